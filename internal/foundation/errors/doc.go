// Package errors provides the classified error type used across docsite.
//
// Three failure families matter for a site build:
//   - config: a malformed or missing configuration field. Always fatal;
//     ConfigFieldError carries the field and the reason.
//   - links: an internal navigation target that does not resolve. Severity
//     follows the site's broken-link policy.
//   - embed: a third-party widget that failed to load. Always a warning.
//
// Example usage:
//
//	err := errors.ConfigFieldError("basePath", "must end with '/'")
//	field, _ := errors.FieldOf(err) // "basePath"
package errors
