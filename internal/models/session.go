package models

// MentorSession is the per-request authenticated session state, reconstructed
// from the session cookie on every request. A session exists only after a
// verified magic link or an admin preview login resolved to a real mentor.
type MentorSession struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	IsPreview bool   `json:"isPreview"`
	ExpiresAt int64  `json:"expiresAt"`
	IssuedAt  int64  `json:"issuedAt"`
}
