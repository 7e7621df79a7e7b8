package teacher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream"
)

// spyIdentity records identity-provider calls and returns injected results.
type spyIdentity struct {
	createUID string
	createErr error
	deleteErr error
	updateErr error

	createCalls int
	deleteCalls int
	updateCalls int

	lastEmail    string
	lastPassword string
	lastDisabled bool
	lastUpdate   upstream.CredentialUpdate
}

func (s *spyIdentity) VerifyToken(ctx context.Context, token string) (string, error) {
	return "", errors.New("not used in orchestration tests")
}

func (s *spyIdentity) CreateCredential(ctx context.Context, email, password string, disabled bool) (string, error) {
	s.createCalls++
	s.lastEmail, s.lastPassword, s.lastDisabled = email, password, disabled
	return s.createUID, s.createErr
}

func (s *spyIdentity) DeleteCredential(ctx context.Context, uid string) error {
	s.deleteCalls++
	return s.deleteErr
}

func (s *spyIdentity) UpdateCredential(ctx context.Context, uid string, upd upstream.CredentialUpdate) error {
	s.updateCalls++
	s.lastUpdate = upd
	return s.updateErr
}

// spyDocs records document-store calls and returns injected results.
type spyDocs struct {
	setErr    error
	updateErr error
	deleteErr error

	setCalls    int
	updateCalls int
	deleteCalls int

	lastCollection string
	lastID         string
	lastFields     map[string]any
}

func (s *spyDocs) GetDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	return nil, upstream.ErrNotFound
}

func (s *spyDocs) SetDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	s.setCalls++
	s.lastCollection, s.lastID, s.lastFields = collection, id, fields
	return s.setErr
}

func (s *spyDocs) UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	s.updateCalls++
	s.lastCollection, s.lastID, s.lastFields = collection, id, fields
	return s.updateErr
}

func (s *spyDocs) DeleteDocument(ctx context.Context, collection, id string) error {
	s.deleteCalls++
	s.lastCollection, s.lastID = collection, id
	return s.deleteErr
}

func validTeacher() Teacher {
	return Teacher{
		Name:     "John Doe",
		Email:    "j@d.com",
		Password: "secret1",
		Gender:   "male",
		Disabled: false,
	}
}

func TestCreate_HappyPath(t *testing.T) {
	ctx := context.Background()
	idp := &spyIdentity{createUID: "u1"}
	docs := &spyDocs{}
	svc := NewService(idp, docs)

	uid, err := svc.Create(ctx, validTeacher())
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)

	assert.Equal(t, "j@d.com", idp.lastEmail)
	assert.Equal(t, "secret1", idp.lastPassword)
	assert.False(t, idp.lastDisabled)

	require.Equal(t, 1, docs.setCalls)
	assert.Equal(t, upstream.TeachersCollection, docs.lastCollection)
	assert.Equal(t, "u1", docs.lastID)
	assert.Equal(t, "John Doe", docs.lastFields["name"])
	assert.Equal(t, "u1", docs.lastFields["id"])
	assert.Equal(t, false, docs.lastFields["disabled"])
	_, hasPassword := docs.lastFields["password"]
	assert.False(t, hasPassword, "password must never reach the document store")
}

func TestCreate_IdentityFailure_NoStoreWrite(t *testing.T) {
	idp := &spyIdentity{createErr: errors.New("email already exists")}
	docs := &spyDocs{}
	svc := NewService(idp, docs)

	_, err := svc.Create(context.Background(), validTeacher())

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, StepIdentity, opErr.Step)
	assert.EqualError(t, opErr.Err, "email already exists")

	assert.Zero(t, docs.setCalls, "no document write may be attempted after an identity failure")
	assert.Zero(t, docs.updateCalls)
	assert.Zero(t, docs.deleteCalls)
}

func TestCreate_DocumentFailure_NoCompensatingDelete(t *testing.T) {
	idp := &spyIdentity{createUID: "u1"}
	docs := &spyDocs{setErr: errors.New("store unavailable")}
	svc := NewService(idp, docs)

	uid, err := svc.Create(context.Background(), validTeacher())

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, StepDocument, opErr.Step)
	assert.Equal(t, "u1", uid, "the credential exists, so the id is reported")
	assert.Zero(t, idp.deleteCalls, "the orphaned credential is deliberately not deleted")
}

func TestDelete_MissingID_ShortCircuits(t *testing.T) {
	idp := &spyIdentity{}
	docs := &spyDocs{}
	svc := NewService(idp, docs)

	err := svc.Delete(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingID)

	assert.Zero(t, idp.deleteCalls, "no upstream call before the id check")
	assert.Zero(t, docs.deleteCalls)
}

func TestDelete_IdentityFailure_StoreUntouched(t *testing.T) {
	idp := &spyIdentity{deleteErr: errors.New("no user record found")}
	docs := &spyDocs{}
	svc := NewService(idp, docs)

	err := svc.Delete(context.Background(), "u1")

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, StepIdentity, opErr.Step)
	assert.Zero(t, docs.deleteCalls)
}

func TestDelete_DocumentFailure_NoRecreate(t *testing.T) {
	idp := &spyIdentity{}
	docs := &spyDocs{deleteErr: errors.New("store unavailable")}
	svc := NewService(idp, docs)

	err := svc.Delete(context.Background(), "u1")

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, StepDocument, opErr.Step)

	assert.Equal(t, 1, idp.deleteCalls)
	assert.Zero(t, idp.createCalls, "the deleted credential is not re-created")
}

func TestRename_UpdatesNameOnly(t *testing.T) {
	idp := &spyIdentity{}
	docs := &spyDocs{}
	svc := NewService(idp, docs)

	require.NoError(t, svc.Rename(context.Background(), "u1", "Jane Doe"))

	assert.Equal(t, 1, docs.updateCalls)
	assert.Equal(t, map[string]any{"name": "Jane Doe"}, docs.lastFields)
	assert.Zero(t, idp.updateCalls, "the identity provider has no name field")
}

func TestRename_StoreFailure(t *testing.T) {
	svc := NewService(&spyIdentity{}, &spyDocs{updateErr: errors.New("not found")})

	err := svc.Rename(context.Background(), "u1", "Jane Doe")
	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, StepDocument, opErr.Step)
}

func TestSetEnabled_HappyPath(t *testing.T) {
	idp := &spyIdentity{}
	docs := &spyDocs{}
	svc := NewService(idp, docs)

	require.NoError(t, svc.SetEnabled(context.Background(), "u1", true))

	require.Equal(t, 1, idp.updateCalls)
	require.NotNil(t, idp.lastUpdate.Disabled)
	assert.True(t, *idp.lastUpdate.Disabled)

	assert.Equal(t, map[string]any{"disabled": true}, docs.lastFields)
}

func TestSetEnabled_IdentityFailure_StoreUntouched(t *testing.T) {
	idp := &spyIdentity{updateErr: errors.New("no user record found")}
	docs := &spyDocs{}
	svc := NewService(idp, docs)

	err := svc.SetEnabled(context.Background(), "u1", true)

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, StepIdentity, opErr.Step)
	assert.Zero(t, docs.updateCalls)
}

func TestSetEnabled_DocumentFailure_IdentityCommitted(t *testing.T) {
	idp := &spyIdentity{}
	docs := &spyDocs{updateErr: errors.New("store unavailable")}
	svc := NewService(idp, docs)

	err := svc.SetEnabled(context.Background(), "u1", true)

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, StepDocument, opErr.Step)
	assert.EqualError(t, opErr.Err, "store unavailable")

	// The identity-side flag is already flipped; no rollback is issued.
	assert.Equal(t, 1, idp.updateCalls)
	require.NotNil(t, idp.lastUpdate.Disabled)
	assert.True(t, *idp.lastUpdate.Disabled)
}
