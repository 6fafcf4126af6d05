package ports

// TokenClaims is the identity payload embedded in a bearer token.
type TokenClaims struct {
	UserID string
	Email  string
}

// TokenCodec signs and verifies opaque bearer tokens carrying an identity
// claim and a fixed expiry.
type TokenCodec interface {
	Sign(userID, email string) (string, error)
	Verify(token string) (*TokenClaims, error)
}
