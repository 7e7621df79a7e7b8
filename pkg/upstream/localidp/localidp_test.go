package localidp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream"
)

func TestIssueAndVerifyToken(t *testing.T) {
	p := New("test-secret")

	token, err := p.IssueToken("admin-1", time.Hour)
	require.NoError(t, err)

	uid, err := p.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", uid)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := New("secret-a")
	verifier := New("secret-b")

	token, err := issuer.IssueToken("admin-1", time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyToken_Expired(t *testing.T) {
	p := New("test-secret")

	token, err := p.IssueToken("admin-1", -time.Minute)
	require.NoError(t, err)

	_, err = p.VerifyToken(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyToken_Garbage(t *testing.T) {
	p := New("test-secret")
	_, err := p.VerifyToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestCredentialLifecycle(t *testing.T) {
	ctx := context.Background()
	p := New("test-secret")

	uid, err := p.CreateCredential(ctx, "j@d.com", "secret1", false)
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	// Duplicate email is rejected.
	_, err = p.CreateCredential(ctx, "j@d.com", "other", false)
	assert.Error(t, err)

	disabled := true
	require.NoError(t, p.UpdateCredential(ctx, uid, upstream.CredentialUpdate{Disabled: &disabled}))
	got, err := p.Disabled(uid)
	require.NoError(t, err)
	assert.True(t, got)

	require.NoError(t, p.DeleteCredential(ctx, uid))
	assert.Error(t, p.DeleteCredential(ctx, uid))

	// Email is freed after deletion.
	_, err = p.CreateCredential(ctx, "j@d.com", "secret1", false)
	assert.NoError(t, err)
}

func TestUpdateCredential_UnknownID(t *testing.T) {
	p := New("test-secret")
	disabled := true
	err := p.UpdateCredential(context.Background(), "nope", upstream.CredentialUpdate{Disabled: &disabled})
	assert.Error(t, err)
}
