package teacher

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	// nameRe is the canonical name rule: after normalization the combined
	// name must reduce to exactly two alphabetic tokens.
	nameRe = regexp.MustCompile(`^[A-Za-z]+ [A-Za-z]+$`)

	emailRe = regexp.MustCompile(`^\w+([.\-]?\w+)*@\w+([.\-]?\w+)*(\.\w{2,3})+$`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Enabled-state values accepted on the create path.
const (
	StateEnabled  = "enabled"
	StateDisabled = "disabled"
)

// MinPasswordLength is the minimum trimmed password length.
const MinPasswordLength = 6

// RawTeacher is unvalidated caller input for the create operation.
type RawTeacher struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Gender    string
	Disabled  string
}

// ValidationError identifies the first field that failed validation.
// Field holds the user-facing label ("name", "email", "password", "gender",
// "enabled/disabled").
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid form data for %s", e.Field)
}

// Message returns the canonical response message for this failure.
func (e *ValidationError) Message() string {
	return fmt.Sprintf("Wrong from data provided for %s.", e.Field)
}

// NormalizeName trims a name part, capitalizes the first letter of every
// whitespace-separated token, and rejoins the tokens with single spaces.
// Normalization is idempotent.
func NormalizeName(s string) string {
	tokens := whitespaceRe.Split(strings.TrimSpace(s), -1)
	for i, tok := range tokens {
		runes := []rune(tok)
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		tokens[i] = string(runes)
	}
	return strings.Join(tokens, " ")
}

// ValidateName normalizes the first and last name parts and checks the
// combined result against the two-token name rule. Name parts that split
// into multiple words survive normalization but fail the combined check.
func ValidateName(first, last string) (string, error) {
	name := strings.TrimSpace(NormalizeName(first) + " " + NormalizeName(last))
	if !nameRe.MatchString(name) {
		return "", &ValidationError{Field: "name"}
	}
	return name, nil
}

// Validate checks raw create input and returns the normalized record.
// Fields are checked in a fixed order (name, email, password, gender,
// enabled/disabled) and only the first failure is reported. No external
// system is consulted.
func Validate(raw RawTeacher) (Teacher, error) {
	name, err := ValidateName(raw.FirstName, raw.LastName)
	if err != nil {
		return Teacher{}, err
	}

	email := strings.TrimSpace(raw.Email)
	if !emailRe.MatchString(email) {
		return Teacher{}, &ValidationError{Field: "email"}
	}

	password := strings.TrimSpace(raw.Password)
	if len(password) < MinPasswordLength {
		return Teacher{}, &ValidationError{Field: "password"}
	}

	gender := strings.TrimSpace(raw.Gender)
	if gender != "male" && gender != "female" {
		return Teacher{}, &ValidationError{Field: "gender"}
	}

	state := strings.TrimSpace(raw.Disabled)
	if state != StateEnabled && state != StateDisabled {
		return Teacher{}, &ValidationError{Field: "enabled/disabled"}
	}

	return Teacher{
		Name:     name,
		Email:    email,
		Password: password,
		Gender:   gender,
		Disabled: state == StateDisabled,
	}, nil
}
