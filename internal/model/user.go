package model

// DefaultRole is assigned when the backend does not report one.
const DefaultRole = "User"

// User is the signed-in operator.
type User struct {
	Email string `json:"email"`
	ID    string `json:"id"`
	Role  string `json:"role"`
}

// Credentials are submitted to sign in or sign up.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by the sign-in and sign-up endpoints.
type AuthResponse struct {
	Error string `json:"error,omitempty"`
	Role  string `json:"role,omitempty"`
	User  *struct {
		ID ID `json:"id"`
	} `json:"user,omitempty"`
}

// UserFor builds the session user from an auth response.
func (r AuthResponse) UserFor(email string) User {
	u := User{Email: email, ID: email, Role: r.Role}
	if r.User != nil && !r.User.ID.IsZero() {
		u.ID = r.User.ID.String()
	}
	if u.Role == "" {
		u.Role = DefaultRole
	}
	return u
}
