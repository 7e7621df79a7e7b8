// Package localidp provides an in-process identity provider for local
// development and tests. Credentials live in memory and bearer tokens are
// HS256-signed JWTs, so the service can run without any external identity
// system configured.
package localidp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream"
)

type credential struct {
	email    string
	password string
	disabled bool
}

// Provider is an in-memory upstream.IdentityProvider. Safe for concurrent use.
type Provider struct {
	secret []byte

	mu      sync.RWMutex
	creds   map[string]*credential // uid -> credential
	byEmail map[string]string      // email -> uid
}

// New creates a Provider signing and verifying tokens with the given secret.
func New(secret string) *Provider {
	return &Provider{
		secret:  []byte(secret),
		creds:   make(map[string]*credential),
		byEmail: make(map[string]string),
	}
}

// IssueToken mints a signed bearer token for the given unique ID.
// The ID does not need to belong to a stored credential, which allows
// seeding admin identities that exist only in the document store.
func (p *Provider) IssueToken(uid string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// VerifyToken parses and validates a token, returning its subject.
func (p *Provider) VerifyToken(ctx context.Context, token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}

// CreateCredential stores a new credential and returns its generated ID.
func (p *Provider) CreateCredential(ctx context.Context, email, password string, disabled bool) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byEmail[email]; exists {
		return "", fmt.Errorf("the email address is already in use by another account")
	}
	uid := uuid.NewString()
	p.creds[uid] = &credential{email: email, password: password, disabled: disabled}
	p.byEmail[email] = uid
	return uid, nil
}

// DeleteCredential removes a credential by ID.
func (p *Provider) DeleteCredential(ctx context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	cred, ok := p.creds[uid]
	if !ok {
		return fmt.Errorf("no user record found for the provided identifier: %s", uid)
	}
	delete(p.byEmail, cred.email)
	delete(p.creds, uid)
	return nil
}

// UpdateCredential applies a partial update to a credential by ID.
func (p *Provider) UpdateCredential(ctx context.Context, uid string, upd upstream.CredentialUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	cred, ok := p.creds[uid]
	if !ok {
		return fmt.Errorf("no user record found for the provided identifier: %s", uid)
	}
	if upd.Disabled != nil {
		cred.disabled = *upd.Disabled
	}
	return nil
}

// Disabled reports the disabled flag of a stored credential.
func (p *Provider) Disabled(uid string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	cred, ok := p.creds[uid]
	if !ok {
		return false, fmt.Errorf("no user record found for the provided identifier: %s", uid)
	}
	return cred.disabled, nil
}
