// Package hugo turns a built SiteConfig into a Hugo site skeleton.
//
// Generation runs as a pipeline of named stages (prepare_output,
// generate_config, layouts, content, an optional verify_links, report) over
// a staging directory that is promoted atomically once every stage has
// succeeded. Warnings never abort a build; fatal stage errors and
// cancellation leave the previous output untouched.
package hugo
