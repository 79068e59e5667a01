package contextKey

// Key is the type used for values this package stores in request contexts.
type Key string

const (
	// UserIDKey holds the authenticated user's id, extracted from the JWT.
	UserIDKey Key = "userID"

	// JwtErrorKey holds any error encountered while parsing the JWT.
	JwtErrorKey Key = "jwtError"
)
