package model

// Access tiers. Tier 0 is the privileged operator tier; every mutating or
// sensitive operation requires it.
const (
	AccessLayerAdmin = 0
	AccessLayerUser  = 1
)

type User struct {
	ID            int64  `json:"id"`
	Login         string `json:"login"`
	PasswordHash  string `json:"-"`
	AccessLayerID int    `json:"accessLayer"`
}

type AccessLayer struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AuthClaims is the decoded payload of a session token. The access layer
// embedded here reflects the account at issuance time; the session guard
// re-reads the current value from the database on every request.
type AuthClaims struct {
	UserID        int64  `json:"id"`
	Login         string `json:"login"`
	AccessLayerID int    `json:"access_layer_id"`
}
