// Package request assembles notification create-request bodies: application
// identity from environment config, localized content, audience targeting
// from the target package, and delivery scheduling. It produces the JSON
// body for POST /notifications and stops there; putting the body on the
// wire, auth headers, and retries belong to the caller's HTTP client.
package request
