// Package fetch is the HTTP page-fetch collaborator.
//
// It owns the per-request timeout, the User-Agent, opaque cookie
// passthrough, and retry of transient failures. Retry policy lives here
// and not in the crawl algorithm: a 5xx or a network error is retried with
// exponential backoff, a 4xx is surfaced immediately. Whatever comes back
// is handed to the caller as a parsed goquery document.
package fetch
