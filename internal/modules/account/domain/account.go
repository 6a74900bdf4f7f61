package domain

import (
	"errors"
	"strings"
	"time"
)

// StoredCredential is the single local account's sign-in record. The
// JSON keys are pinned; blobs written by earlier releases must keep
// decoding.
type StoredCredential struct {
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	DOB       time.Time `json:"dob"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
}

func (c StoredCredential) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Matches reports whether the supplied sign-in attempt unlocks this
// credential: emails compare case-insensitively after trimming the
// attempt, passwords compare exactly.
func (c StoredCredential) Matches(email, password string) bool {
	attempt := strings.ToLower(strings.TrimSpace(email))
	return strings.ToLower(c.Email) == attempt && c.Password == password
}

// Registration is a create-account request before validation.
type Registration struct {
	FirstName       string
	LastName        string
	DOB             time.Time
	Email           string
	Password        string
	ConfirmPassword string
}

// Validation failures carry user-facing messages; checks run in order
// and the first failure wins.
var (
	ErrNameRequired     = errors.New("Please enter your first and last name.")
	ErrInvalidDOB       = errors.New("Please choose a valid date of birth.")
	ErrInvalidEmail     = errors.New("Please enter a valid email address (must include @).")
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters.")
	ErrPasswordMismatch = errors.New("Passwords do not match.")
)

// Validate checks the registration and returns the trimmed credential
// to store on success.
func (r Registration) Validate(now time.Time) (StoredCredential, error) {
	firstName := strings.TrimSpace(r.FirstName)
	lastName := strings.TrimSpace(r.LastName)
	if firstName == "" || lastName == "" {
		return StoredCredential{}, ErrNameRequired
	}
	if r.DOB.IsZero() || r.DOB.After(now) {
		return StoredCredential{}, ErrInvalidDOB
	}
	email := strings.TrimSpace(r.Email)
	if !strings.Contains(email, "@") {
		return StoredCredential{}, ErrInvalidEmail
	}
	if len(r.Password) < 8 {
		return StoredCredential{}, ErrPasswordTooShort
	}
	if r.Password == "" || r.Password != r.ConfirmPassword {
		return StoredCredential{}, ErrPasswordMismatch
	}
	return StoredCredential{
		FirstName: firstName,
		LastName:  lastName,
		DOB:       r.DOB,
		Email:     email,
		Password:  r.Password,
	}, nil
}
