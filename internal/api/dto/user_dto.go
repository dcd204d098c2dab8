package dto

// RegisterRequest payload for new citizens. A role field, if supplied, is
// ignored; registration always yields a citizen.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest payload for token refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}
