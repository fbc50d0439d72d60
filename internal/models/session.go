package models

// Session is what the session slot holds: enough to restore UI state, never used for authorization.
type Session struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}
