package model

// User represents a registered account. The password is stored and compared
// verbatim; hardening credential storage is explicitly out of scope.
type User struct {
	Username string
	Password string
}
