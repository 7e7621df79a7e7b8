// Package teacher implements the teacher record domain: input validation
// and normalization, and the ordered dual-system write orchestration across
// the identity provider and the document store.
package teacher

// Teacher is a validated, normalized teacher record. A record is consistent
// when an identity-provider credential and a document-store entry both exist
// under the same ID with equal disabled flags.
type Teacher struct {
	// ID is assigned by the identity provider at creation and never changes.
	ID string

	// Name is the normalized full name, always two capitalized tokens
	// joined by a single space.
	Name string

	Email string

	// Password is write-only: it is handed to the identity provider at
	// creation and never stored in the document store.
	Password string

	Gender string

	// Disabled is mirrored in both external systems.
	Disabled bool
}

// documentFields returns the document-store representation of the record.
// The password is deliberately absent.
func (t Teacher) documentFields() map[string]any {
	return map[string]any{
		"id":       t.ID,
		"name":     t.Name,
		"email":    t.Email,
		"gender":   t.Gender,
		"disabled": t.Disabled,
	}
}
