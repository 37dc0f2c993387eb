package directory

import "github.com/knozaki/trak/internal/model"

// UserDirectory manages registered users and the single active session.
// A directory starts with no users and nobody logged in.
type UserDirectory struct {
	users   map[string]model.User
	current *model.User
}

// NewUserDirectory creates an empty directory.
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{users: make(map[string]model.User)}
}

// Register stores a new credential. Returns false, with no mutation, if the
// username is already taken.
func (d *UserDirectory) Register(username, password string) bool {
	if _, exists := d.users[username]; exists {
		return false
	}
	d.users[username] = model.User{Username: username, Password: password}
	return true
}

// Exists reports whether a username is registered.
func (d *UserDirectory) Exists(username string) bool {
	_, ok := d.users[username]
	return ok
}

// Login compares the password verbatim against the stored credential and,
// on a match, makes the user the active session.
func (d *UserDirectory) Login(username, password string) bool {
	u, ok := d.users[username]
	if !ok || u.Password != password {
		return false
	}
	d.current = &u
	return true
}

// Logout clears the active session. Safe to call when nobody is logged in.
func (d *UserDirectory) Logout() {
	d.current = nil
}

// IsLoggedIn reports whether a session is active.
func (d *UserDirectory) IsLoggedIn() bool {
	return d.current != nil
}

// Current returns the active user, if any.
func (d *UserDirectory) Current() (model.User, bool) {
	if d.current == nil {
		return model.User{}, false
	}
	return *d.current, true
}
