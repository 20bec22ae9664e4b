package domain

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrDomainTaken        = errors.New("tenant domain already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// ErrNotFound is returned when an entity does not exist or belongs to a
// different tenant. The two cases are deliberately indistinguishable so that
// id probing cannot reveal another tenant's rows.
var ErrNotFound = errors.New("not found")

// Validation errors
var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrTenantNameRequired = errors.New("tenant name cannot be empty")
	ErrDomainRequired     = errors.New("tenant domain cannot be empty")
	ErrFirstNameRequired  = errors.New("first name cannot be empty")
	ErrNameRequired       = errors.New("project name cannot be empty")
	ErrNameTooLong        = errors.New("project name cannot exceed 200 characters")
	ErrTitleRequired      = errors.New("task title cannot be empty")
	ErrTitleTooLong       = errors.New("task title cannot exceed 200 characters")
	ErrInvalidPriority    = errors.New("invalid task priority")
)

// ErrIllegalTransition is returned by the status state machines when a
// transition between two states is not permitted.
var ErrIllegalTransition = errors.New("illegal status transition")

// MFA errors
var (
	ErrMFANotEnabled     = errors.New("MFA is not enabled for this account")
	ErrMFAAlreadyEnabled = errors.New("MFA is already enabled")
	ErrInvalidMFACode    = errors.New("invalid MFA code")
)
