package models

// Identity is the authenticated caller as issued by the external identity
// provider. It is consumed per request and never persisted here; the social
// profile for a user lives in Profile.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Image  string `json:"image,omitempty"`
}
