// Package homepage composes the data-driven homepage regions: the feature
// grid and the hero banner. Composers turn configuration into view models;
// the view models render themselves with html/template.
//
// Third-party embeds are loaded through an EmbedLoader. A failing loader
// never fails the page: the embed region renders empty and the failure is
// reported on the Hero value, in the log and in metrics.
package homepage
