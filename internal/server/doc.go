// Package server is the local preview server behind "folio serve".
//
// It renders the portfolio, blog and post pages from the configuration and
// the posts directory, serves the post files without caching, and can watch
// the posts directory to rebuild the index while posts are being written.
//
// Routes:
//
//	GET /                   portfolio page
//	GET /partials/projects  project cards, swapped into the portfolio page
//	GET /blog, /blog.html   blog list page
//	GET /partials/posts     blog list cards
//	GET /post, /post.html   post page, ?file=<name>
//	GET /<posts dir>/*      raw post files and the index
//	GET /static/*           stylesheet and script
//	GET /healthz            liveness probe
package server
