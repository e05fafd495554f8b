// Package client contains the transport layer of the accessdoc client.
//
// # Overview
//
//  1. Client: the REST contract of the document-processing backend
//     (auth, /me, settings, upload, text verification, admin, status).
//  2. HTTPClient: the net/http implementation. Every call gets an
//     X-Request-ID; authenticated calls take the bearer token explicitly.
//  3. InitDatabase / RunMigrations: the local SQLite store bootstrap with
//     embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses become *APIError (wrapping ErrUnauthorized,
// ErrQuotaExceeded or ErrUnavailable where the status maps to one) or
// *ValidationError for 422 field lists. Transport failures wrap
// ErrUnavailable. Nothing is retried.
package client
