package teacher

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZaidRasheed/backend-admin-panel/internal/logger"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream"
)

// Step names the external system a dual-write step targets.
type Step string

const (
	// StepIdentity is the identity-provider write, always attempted first.
	StepIdentity Step = "identity"

	// StepDocument is the document-store write, attempted only after the
	// identity write succeeded.
	StepDocument Step = "document"
)

// OpError reports which step of a dual-system operation failed. When Step
// is StepDocument the identity-side write has already committed and is not
// rolled back; the two systems are inconsistent until reconciled manually.
type OpError struct {
	Step Step
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s write failed: %v", e.Step, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// ErrMissingID is returned when an operation requiring a teacher ID is
// called without one. No external call is made in that case.
var ErrMissingID = errors.New("missing teacher id")

// Service orchestrates teacher lifecycle operations across the identity
// provider and the document store. Within one operation the steps are
// strictly ordered: the identity write completes before the document write
// is attempted. The service performs no retries and no compensation; partial
// failures are reported through OpError.
type Service struct {
	idp  upstream.IdentityProvider
	docs upstream.DocumentStore
}

// NewService creates a Service over the given upstream clients.
func NewService(idp upstream.IdentityProvider, docs upstream.DocumentStore) *Service {
	return &Service{idp: idp, docs: docs}
}

// Create provisions an identity credential, then mirrors the profile into
// the document store under the newly assigned ID. If the credential is
// created but the document write fails, the credential is left in place and
// the returned OpError carries StepDocument; the returned ID is still valid.
func (s *Service) Create(ctx context.Context, t Teacher) (string, error) {
	uid, err := s.idp.CreateCredential(ctx, t.Email, t.Password, t.Disabled)
	if err != nil {
		return "", &OpError{Step: StepIdentity, Err: err}
	}

	t.ID = uid
	if err := s.docs.SetDocument(ctx, upstream.TeachersCollection, uid, t.documentFields()); err != nil {
		logger.Error("teacher credential created but profile write failed",
			"id", uid, "error", err)
		return uid, &OpError{Step: StepDocument, Err: err}
	}
	return uid, nil
}

// Delete removes the identity credential first, then the profile document.
// A failed credential delete leaves both systems untouched; a failed
// document delete leaves the record deleted-from-auth but present-in-store.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}

	if err := s.idp.DeleteCredential(ctx, id); err != nil {
		return &OpError{Step: StepIdentity, Err: err}
	}

	if err := s.docs.DeleteDocument(ctx, upstream.TeachersCollection, id); err != nil {
		logger.Error("teacher credential deleted but profile removal failed",
			"id", id, "error", err)
		return &OpError{Step: StepDocument, Err: err}
	}
	return nil
}

// Rename updates the profile document's name field. The identity provider
// carries no name, so this is a single-system write.
func (s *Service) Rename(ctx context.Context, id, name string) error {
	err := s.docs.UpdateDocument(ctx, upstream.TeachersCollection, id, map[string]any{"name": name})
	if err != nil {
		return &OpError{Step: StepDocument, Err: err}
	}
	return nil
}

// SetEnabled updates the credential's disabled flag first, then mirrors it
// into the profile document. A failed mirror leaves the flags inconsistent
// between the two systems.
func (s *Service) SetEnabled(ctx context.Context, id string, disabled bool) error {
	upd := upstream.CredentialUpdate{Disabled: &disabled}
	if err := s.idp.UpdateCredential(ctx, id, upd); err != nil {
		return &OpError{Step: StepIdentity, Err: err}
	}

	err := s.docs.UpdateDocument(ctx, upstream.TeachersCollection, id, map[string]any{"disabled": disabled})
	if err != nil {
		logger.Error("credential disabled flag updated but profile mirror failed",
			"id", id, "disabled", disabled, "error", err)
		return &OpError{Step: StepDocument, Err: err}
	}
	return nil
}
