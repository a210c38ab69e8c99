package models

import "time"

// User is the authenticated account profile. It is owned by the session;
// consumers read it but never mutate it directly. Profile edits go through
// the server and a subsequent session update.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Phone     string     `json:"phone,omitempty"`
	Company   string     `json:"company,omitempty"`
	Address   string     `json:"address,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// Session is the authenticated identity plus token pair held for the
// current run. AccessToken and RefreshToken are always set or cleared
// together, never one without the other.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Valid reports whether the session carries a complete credential set.
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.RefreshToken != ""
}

// ProfileUpdate carries the editable profile fields. Zero-valued fields
// are omitted from the request so the server leaves them untouched.
type ProfileUpdate struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
}
