// Package session holds the canonical representation of the logged-in
// identity, the normalizer that reconciles the backend's inconsistent
// response shapes into it, and the store that owns its lifecycle.
package session

// Session is the canonical, normalized identity record plus its bearer
// token. An empty Token means the session is not authenticated, even when
// the other fields are populated.
type Session struct {
	Token    string `json:"token"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Approved bool   `json:"approved"`
	Phone    string `json:"phone"`
}

// Authenticated reports whether the session carries a bearer token. Callers
// must check this before treating the session as logged in.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// asMap renders the session in its canonical JSON field names, which is also
// a valid Normalize input (normalization is idempotent over it).
func (s Session) asMap() map[string]any {
	return map[string]any{
		"token":    s.Token,
		"id":       s.ID,
		"name":     s.Name,
		"email":    s.Email,
		"role":     s.Role,
		"approved": s.Approved,
		"phone":    s.Phone,
	}
}
