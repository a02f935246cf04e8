// Package git reads metadata about the repository that contains the site
// configuration: HEAD commit, branch and origin remote. The build stamps it
// into the generated site and derives "edit this page" links from it.
package git
