package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SetPersonaRequest is the request body for switching the demo persona.
// "default" (or empty) clears the override.
type SetPersonaRequest struct {
	Role string `json:"role"`
}

// CreateClubRequest is the request body for creating a club
type CreateClubRequest struct {
	Name   string `json:"name"`
	Sport  string `json:"sport,omitempty"`
	County string `json:"county,omitempty"`
	Color  string `json:"color,omitempty"`
}

// UpdateClubRequest is the request body for updating club settings.
// Omitted fields are left unchanged.
type UpdateClubRequest struct {
	Name   string `json:"name,omitempty"`
	Sport  string `json:"sport,omitempty"`
	County string `json:"county,omitempty"`
	Color  string `json:"color,omitempty"`
}
