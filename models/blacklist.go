package models

// Blacklist holds access tokens revoked by logout.
type Blacklist struct {
	Model
	Email string `json:"email"`
	Token string `json:"token"`
}
