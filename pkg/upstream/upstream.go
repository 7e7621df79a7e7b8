// Package upstream defines the capability interfaces for the two external
// systems a teacher record spans: the identity provider, which owns
// credentials and login state, and the document store, which owns profile
// fields. Every mutating operation in the service is an ordered write
// sequence across implementations of these two interfaces.
package upstream

import (
	"context"
	"errors"
)

// Document store collections used by the service.
const (
	AdminsCollection   = "admins"
	TeachersCollection = "teachers"
)

// ErrNotFound is returned by GetDocument when no document exists under the
// given id. Transport and permission failures are returned as-is so callers
// can distinguish "absent" from "unknown".
var ErrNotFound = errors.New("upstream: document not found")

// CredentialUpdate describes a partial update to an identity credential.
// Nil fields are left unchanged.
type CredentialUpdate struct {
	Disabled *bool
}

// IdentityProvider is the narrow surface of the external authentication
// system. It is the source of truth for unique IDs and login capability.
type IdentityProvider interface {
	// VerifyToken checks a bearer token and returns the unique ID of the
	// identity it belongs to.
	VerifyToken(ctx context.Context, token string) (string, error)

	// CreateCredential provisions a login-capable credential and returns
	// the newly assigned unique ID.
	CreateCredential(ctx context.Context, email, password string, disabled bool) (string, error)

	// DeleteCredential removes the credential for the given ID.
	DeleteCredential(ctx context.Context, uid string) error

	// UpdateCredential applies a partial update to the credential.
	UpdateCredential(ctx context.Context, uid string, upd CredentialUpdate) error
}

// DocumentStore is the narrow surface of the external per-record document
// database holding profile data.
type DocumentStore interface {
	// GetDocument returns the fields of a document, or ErrNotFound.
	GetDocument(ctx context.Context, collection, id string) (map[string]any, error)

	// SetDocument creates or fully replaces a document.
	SetDocument(ctx context.Context, collection, id string, fields map[string]any) error

	// UpdateDocument applies a partial update to an existing document.
	// Updating a document that does not exist is an error.
	UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error

	// DeleteDocument removes a document. Deleting an absent document is
	// not an error.
	DeleteDocument(ctx context.Context, collection, id string) error
}
