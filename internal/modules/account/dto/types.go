package dto

import "time"

type RegisterInput struct {
	FirstName       string
	LastName        string
	DOB             time.Time
	Email           string
	Password        string
	ConfirmPassword string
}

type RegisterOutput struct {
	FullName string
	Email    string
}

type SignInInput struct {
	Email    string
	Password string
}

type SignInOutput struct {
	FullName string
	Email    string
}

type CredentialOutput struct {
	FirstName string
	LastName  string
	DOB       time.Time
	Email     string
}
