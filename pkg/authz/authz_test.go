package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream/memory"
)

// stubVerifier maps tokens to unique IDs for authorizer tests. Only
// VerifyToken is exercised by the authorizer.
type stubVerifier struct {
	uids map[string]string // token -> uid
}

func (s *stubVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, ok := s.uids[token]
	if !ok {
		return "", errors.New("invalid token")
	}
	return uid, nil
}

func (s *stubVerifier) CreateCredential(ctx context.Context, email, password string, disabled bool) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubVerifier) DeleteCredential(ctx context.Context, uid string) error {
	return errors.New("not implemented")
}

func (s *stubVerifier) UpdateCredential(ctx context.Context, uid string, upd upstream.CredentialUpdate) error {
	return errors.New("not implemented")
}

// failingStore wraps the memory store to inject a transport failure on Get.
type failingStore struct {
	*memory.Store
}

func (f *failingStore) GetDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	return nil, errors.New("connection reset")
}

func TestAuthorize_MissingToken(t *testing.T) {
	a := New(&stubVerifier{}, memory.NewStore())

	_, err := a.Authorize(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestAuthorize_InvalidToken(t *testing.T) {
	a := New(&stubVerifier{uids: map[string]string{}}, memory.NewStore())

	_, err := a.Authorize(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_NoAdminDocument(t *testing.T) {
	idp := &stubVerifier{uids: map[string]string{"tok": "u1"}}
	a := New(idp, memory.NewStore())

	_, err := a.Authorize(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_AdminDocumentWithoutName(t *testing.T) {
	ctx := context.Background()
	idp := &stubVerifier{uids: map[string]string{"tok": "u1"}}
	docs := memory.NewStore()
	a := New(idp, docs)

	// Document exists but has no name field.
	require.NoError(t, docs.SetDocument(ctx, upstream.AdminsCollection, "u1", map[string]any{"role": "admin"}))
	_, err := a.Authorize(ctx, "tok")
	assert.ErrorIs(t, err, ErrForbidden)

	// Empty name field denies as well.
	require.NoError(t, docs.SetDocument(ctx, upstream.AdminsCollection, "u1", map[string]any{"name": ""}))
	_, err = a.Authorize(ctx, "tok")
	assert.ErrorIs(t, err, ErrForbidden)

	// A name of the wrong type denies too.
	require.NoError(t, docs.SetDocument(ctx, upstream.AdminsCollection, "u1", map[string]any{"name": 42}))
	_, err = a.Authorize(ctx, "tok")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_LookupFailureFailsClosed(t *testing.T) {
	idp := &stubVerifier{uids: map[string]string{"tok": "u1"}}
	a := New(idp, &failingStore{memory.NewStore()})

	_, err := a.Authorize(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_Admin(t *testing.T) {
	ctx := context.Background()
	idp := &stubVerifier{uids: map[string]string{"tok": "u1"}}
	docs := memory.NewStore()
	require.NoError(t, docs.SetDocument(ctx, upstream.AdminsCollection, "u1", map[string]any{"name": "Root Admin"}))

	a := New(idp, docs)
	uid, err := a.Authorize(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
}
