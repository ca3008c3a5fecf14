// Package langcode holds the language-code table of the notification
// delivery service, embedded at build time. Request builders use it to
// validate the language keys of localized content; the filter package
// deliberately does not consult it, since filter predicates forward language
// codes to the server unvalidated.
package langcode
