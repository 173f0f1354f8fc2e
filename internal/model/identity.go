package model

// Identity is whoever is acting on a cost form: a signed-in resident or an
// anonymous preview session. Exactly one of the fields is set.
type Identity struct {
	UserID    string
	SessionID string
}

// IsZero reports whether nobody is acting.
func (i Identity) IsZero() bool {
	return i.UserID == "" && i.SessionID == ""
}

// Key is a stable string for locks and log fields.
func (i Identity) Key() string {
	if i.UserID != "" {
		return "user:" + i.UserID
	}
	if i.SessionID != "" {
		return "session:" + i.SessionID
	}
	return ""
}
