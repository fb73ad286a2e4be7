package service

import "fmt"

// ErrorKind identifies why a credential operation failed.
type ErrorKind string

const (
	KindInvalidUsername       ErrorKind = "invalid_username"
	KindUsernameTaken         ErrorKind = "username_taken"
	KindEmailTaken            ErrorKind = "email_taken"
	KindInvalidEmail          ErrorKind = "invalid_email"
	KindWeakPassword          ErrorKind = "weak_password"
	KindUserNotFound          ErrorKind = "user_not_found"
	KindInvalidPassword       ErrorKind = "invalid_password"
	KindEmailNotRegistered    ErrorKind = "email_not_registered"
	KindInvalidOrExpiredToken ErrorKind = "invalid_or_expired_token"
	KindStorageFailure        ErrorKind = "storage_failure"
)

// CredentialError is the only error type returned across the CredentialStore
// boundary. Message is suitable for showing to the user as is.
type CredentialError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *CredentialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// Is matches any CredentialError of the same kind, so callers can compare
// against the exported sentinels with errors.Is.
func (e *CredentialError) Is(target error) bool {
	t, ok := target.(*CredentialError)
	return ok && t.Kind == e.Kind
}

const weakPasswordMessage = "Password must be at least 8 characters with uppercase, lowercase, number, and special character"

var (
	ErrInvalidUsername       = &CredentialError{Kind: KindInvalidUsername, Message: "Username is required"}
	ErrUsernameTaken         = &CredentialError{Kind: KindUsernameTaken, Message: "Username already exists"}
	ErrEmailTaken            = &CredentialError{Kind: KindEmailTaken, Message: "Email already registered"}
	ErrInvalidEmail          = &CredentialError{Kind: KindInvalidEmail, Message: "Invalid email format"}
	ErrWeakPassword          = &CredentialError{Kind: KindWeakPassword, Message: weakPasswordMessage}
	ErrUserNotFound          = &CredentialError{Kind: KindUserNotFound, Message: "User not found"}
	ErrInvalidPassword       = &CredentialError{Kind: KindInvalidPassword, Message: "Invalid password"}
	ErrEmailNotRegistered    = &CredentialError{Kind: KindEmailNotRegistered, Message: "Email not registered"}
	ErrInvalidOrExpiredToken = &CredentialError{Kind: KindInvalidOrExpiredToken, Message: "Invalid or expired token"}
	ErrStorageFailure        = &CredentialError{Kind: KindStorageFailure, Message: "Storage failure"}
)

func storageFailure(op string, err error) *CredentialError {
	return &CredentialError{
		Kind:    KindStorageFailure,
		Message: "Storage failure during " + op,
		Err:     err,
	}
}
