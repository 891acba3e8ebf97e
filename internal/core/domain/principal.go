package domain

// Principal is the authenticated identity attached to a request after the
// authentication gate has accepted it. Role is always in canonical prefixed
// form. Downstream handlers read it, never mutate it.
type Principal struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// PrincipalFromUser builds a Principal from a stored user record.
func PrincipalFromUser(u *User) Principal {
	return Principal{
		ID:    u.ID,
		Email: u.Email,
		Role:  NormalizeRole(u.Role),
	}
}
