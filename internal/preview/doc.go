// Package preview serves a locally built site while watching its
// configuration for changes.
//
// The homepage is composed in-process and served at the site base path; the
// generated Hugo project is exposed read-only under <basePath>site/ so the
// emitted configuration and partials can be inspected. Every relevant change
// to the site file, its .env files or the content directory triggers a
// debounced rebuild. A failed rebuild keeps the last good page.
package preview
