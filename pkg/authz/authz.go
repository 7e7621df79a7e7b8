// Package authz implements the administrator gate in front of every
// mutating operation. Authorization is existence-based: a caller is an
// administrator when the document store's admins collection holds a
// document under their unique ID with a non-empty name field.
//
// The gate fails closed: any uncertainty about admin status denies access.
package authz

import (
	"context"
	"errors"

	"github.com/ZaidRasheed/backend-admin-panel/internal/logger"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream"
)

var (
	// ErrMissingToken is returned when no bearer token is present.
	ErrMissingToken = errors.New("authz: missing token")

	// ErrForbidden is returned for every other denial: invalid token,
	// no admin record, empty name field, or a lookup failure.
	ErrForbidden = errors.New("authz: not an administrator")
)

// Authorizer verifies bearer tokens against the identity provider and
// checks admin status in the document store. Every request re-verifies;
// there is no caching.
type Authorizer struct {
	idp  upstream.IdentityProvider
	docs upstream.DocumentStore
}

// New creates an Authorizer over the given upstream clients.
func New(idp upstream.IdentityProvider, docs upstream.DocumentStore) *Authorizer {
	return &Authorizer{idp: idp, docs: docs}
}

// Authorize validates the token and confirms the caller is an administrator,
// returning the caller's unique ID on success.
func (a *Authorizer) Authorize(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	uid, err := a.idp.VerifyToken(ctx, token)
	if err != nil {
		logger.Debug("token verification failed", "error", err)
		return "", ErrForbidden
	}

	doc, err := a.docs.GetDocument(ctx, upstream.AdminsCollection, uid)
	if err != nil {
		// A transport failure is indistinguishable from "not an admin"
		// for the caller, but worth logging for diagnostics.
		if !errors.Is(err, upstream.ErrNotFound) {
			logger.Error("admin lookup failed", "id", uid, "error", err)
		}
		return "", ErrForbidden
	}

	name, _ := doc["name"].(string)
	if name == "" {
		return "", ErrForbidden
	}
	return uid, nil
}
