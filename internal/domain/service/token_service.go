package service

// TokenService defines the interface for generating and validating access tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken creates a signed access token for the given user id.
	GenerateToken(userID int64) (string, error)

	// ValidateToken checks a token string and returns the user id it carries.
	ValidateToken(tokenString string) (int64, error)
}
