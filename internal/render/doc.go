// Package render fills page regions with blog and project content.
//
// BlogList renders the post index as summary cards, Post renders one post
// into a title and a body region, and Projects renders GitHub repositories
// as project cards. Every renderer owns its regions and replaces their
// content wholesale; failures are shown in the region as a fixed message
// and also returned so the caller can log them.
//
// All interpolated text goes through html/template, so titles, dates and
// descriptions taken from post metadata or GitHub cannot inject markup.
package render
