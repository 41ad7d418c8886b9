// Package model defines the records shared by the post index builder, the
// GitHub project fetcher and the renderers.
//
//   - PostRecord / PostIndex: the blog post manifest written by the build step
//   - RepoRecord: a repository normalized from any GitHub lookup API
//
// The types carry JSON tags because PostIndex is persisted as the post index
// file and RepoRecord is emitted by the JSON report writer.
package model
