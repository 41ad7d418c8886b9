package model

import (
	"slices"
	"strings"
)

// PostRecord describes one blog post in the post index.
// The JSON field order is part of the index file format.
type PostRecord struct {
	// File is the post's file name relative to the posts directory.
	// It is the unique key of the record.
	File string `json:"file"`

	// ID is File without its extension.
	ID string `json:"id"`

	// Title is the first heading of the post, or the ID when none was found.
	Title string `json:"title"`

	// Date is an ISO-8601 calendar date ("YYYY-MM-DD").
	// It falls back to the file modification date.
	Date string `json:"date"`

	// Description is the HTML-stripped first paragraph, at most
	// MaxDescriptionLength characters.
	Description string `json:"description"`

	// Path is the post location relative to the site root, e.g. "posts/hello.html".
	Path string `json:"path"`
}

// MaxDescriptionLength is the maximum number of characters kept in
// PostRecord.Description.
const MaxDescriptionLength = 200

// PostIndex is the ordered list of posts written to the index file.
type PostIndex []PostRecord

// Sort orders the index by Date descending using plain string comparison.
// Records with equal dates keep their scan order. Dates are not parsed, so
// only "YYYY-MM-DD" values sort chronologically.
func (idx PostIndex) Sort() {
	slices.SortStableFunc(idx, func(a, b PostRecord) int {
		return strings.Compare(b.Date, a.Date)
	})
}

// IsSorted reports whether every adjacent pair (a, b) satisfies a.Date >= b.Date.
func (idx PostIndex) IsSorted() bool {
	for i := 1; i < len(idx); i++ {
		if idx[i-1].Date < idx[i].Date {
			return false
		}
	}
	return true
}
