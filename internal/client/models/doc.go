// Package models holds the client-side data model: the session, the
// current document, the reader/text settings and the wire DTOs of the
// document-processing API.
package models
