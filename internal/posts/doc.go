// Package posts turns a directory of static post files into the JSON post
// index consumed by the blog renderers.
//
// Extraction is done by an Extractor. RegexExtractor is the default: it uses
// single-pass pattern matching and deliberately misses headings that span
// lines or contain nested tags. HTMLExtractor produces the same Metadata with
// a real markup parser for sites that need it.
//
// Builder enumerates the posts directory, extracts metadata from every
// accepted file, sorts the records by date and writes the index. A post that
// cannot be read aborts the whole build.
package posts
