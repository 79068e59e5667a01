package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/form3tech-oss/jwt-go"
	"github.com/mhasan/lifeos/lib/utils"
	"github.com/zalando/go-keyring"
)

// jwtSigningKey is used to sign and verify JWT tokens.
var jwtSigningKey string

// KeyringKey is used to store and retrieve the JWT token from the system keyring.
var KeyringKey string

// RefreshKeyringKey is used to store and retrieve the refresh token from the system keyring.
var RefreshKeyringKey string

// ServerURL is the URL of the server the client is connecting to.
var ServerURL string

// client is the HTTP client used to make requests to the server.
var client = &http.Client{}

// KeyringService is the name of the service in the system keyring where the
// JWT token and refresh token are stored.
const KeyringService = "LifeOS"

// TokenResult represents the outcome of a request to an auth endpoint, such
// as SignIn or SignUp.
type TokenResult struct {
	Token        string
	RefreshToken string
}

// InitAuthClient initializes the client package globals. This function must
// be called before using any other functions in the package.
func InitAuthClient(serverURL, signingKey, authToken, authTokenRefresh string) {
	jwtSigningKey = signingKey
	KeyringKey = authToken
	RefreshKeyringKey = authTokenRefresh
	ServerURL = serverURL
}

// decodeJWT decodes a JWT token and returns the claims contained within it.
// It returns an error if the token is invalid.
func decodeJWT(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSigningKey), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// isJwtTokenInKeyring checks if the system keyring contains a JWT token.
// Returns 'true' and the token if it exists, 'false' and an empty string if
// it doesn't.
func isJwtTokenInKeyring() (bool, string, error) {
	jwt, err := keyring.Get(KeyringService, KeyringKey)
	if err != nil {
		if err == keyring.ErrNotFound {
			return false, "", nil
		}
		return false, "", errors.New("failed to access keyring: " + err.Error())
	}
	return true, jwt, nil
}

// saveTokens stores a token pair in the system keyring. If the refresh token
// cannot be stored, the access token is removed again so the keyring never
// holds half a session.
func saveTokens(token, refreshToken string) error {
	if err := keyring.Set(KeyringService, KeyringKey, token); err != nil {
		return err
	}
	if refreshToken != "" {
		if err := keyring.Set(KeyringService, RefreshKeyringKey, refreshToken); err != nil {
			keyring.Delete(KeyringService, KeyringKey)
			return err
		}
	}
	return nil
}

// ClearKeyring clears the JWT token and refresh token from the system
// keyring atomically.
func ClearKeyring() error {
	accessToken, err := keyring.Get(KeyringService, KeyringKey)
	if err != nil {
		return errors.New("failed to retrieve access token from keyring: " + err.Error())
	}

	err = keyring.Delete(KeyringService, KeyringKey)
	if err != nil {
		return errors.New("failed to delete access token from keyring: " + err.Error())
	}

	err = keyring.Delete(KeyringService, RefreshKeyringKey)
	if err != nil {
		keyring.Set(KeyringService, KeyringKey, accessToken)
		return errors.New("failed to delete refresh token from keyring: " + err.Error())
	}

	return nil
}

// IsUserAuthenticated checks if the user is authenticated by checking if a
// valid JWT token exists in the system keyring. If the token is expired, it
// tries to refresh it using the refresh token. Returns the usable token, or
// an empty string if no user is signed in.
func IsUserAuthenticated() (string, error) {
	hasJwt, tokenStr, err := isJwtTokenInKeyring()
	if err != nil {
		return "", err
	}

	if !hasJwt {
		return "", nil
	}

	_, err = decodeJWT(tokenStr)
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok {
			if ve.Errors&jwt.ValidationErrorExpired != 0 {
				newToken, refreshErr := RefreshAccessToken(tokenStr)
				if refreshErr != nil {
					return "", refreshErr
				}
				return newToken, nil
			}
		}
		return "", err
	}

	return tokenStr, nil
}

// RefreshAccessToken attempts to refresh the JWT token using the refresh
// token stored in the keyring.
func RefreshAccessToken(tokenStr string) (string, error) {
	refreshToken, err := keyring.Get(KeyringService, RefreshKeyringKey)
	if err != nil {
		return "", err
	}

	var tokens tokenResponse
	payload := map[string]string{"refreshToken": refreshToken}
	if err := sendRequest("POST", "/auth/refresh", &tokenStr, payload, &tokens); err != nil {
		return "", err
	}

	if err := saveTokens(tokens.AuthToken, tokens.RefreshToken); err != nil {
		return "", err
	}
	return tokens.AuthToken, nil
}

// SignIn attempts to sign in a user with the provided username and password.
// Returns the JWT token and refresh token if the sign in was successful.
func SignIn(username, password string) (string, string, error) {
	isSignedIn, _, err := isJwtTokenInKeyring()
	if err != nil {
		return "", "", err
	}
	if isSignedIn {
		return "", "", errors.New("a user is already signed in")
	}

	var tokens tokenResponse
	payload := map[string]string{"username": username, "password": password}
	if err := sendRequest("POST", "/auth/signin", nil, payload, &tokens); err != nil {
		return "", "", err
	}

	if err := saveTokens(tokens.AuthToken, tokens.RefreshToken); err != nil {
		return "", "", err
	}
	return tokens.AuthToken, tokens.RefreshToken, nil
}

// SignUp attempts to sign up a new user with the provided username, email,
// and password.
func SignUp(username, email, password string) (string, string, error) {
	isSignedIn, _, err := isJwtTokenInKeyring()
	if err != nil {
		return "", "", err
	}
	if isSignedIn {
		return "", "", errors.New("a user is already signed in")
	}

	if len(username) < 2 {
		return "", "", errors.New("username must be at least 2 characters")
	}
	if !utils.ValidateEmail(email) {
		return "", "", errors.New("invalid email format")
	}
	if !utils.ValidatePassword(password) {
		return "", "", errors.New("password must be at least 8 characters and contain both letters and numbers")
	}

	var tokens tokenResponse
	payload := map[string]string{"username": username, "email": email, "password": password}
	if err := sendRequest("POST", "/auth/signup", nil, payload, &tokens); err != nil {
		return "", "", err
	}

	if err := saveTokens(tokens.AuthToken, tokens.RefreshToken); err != nil {
		return "", "", err
	}
	return tokens.AuthToken, tokens.RefreshToken, nil
}

// UpdateUser updates the current user's account details. It requires the
// current password for authentication; empty new fields are left unchanged.
func UpdateUser(currentPassword, newUsername, newEmail, newPassword string) error {
	token, err := IsUserAuthenticated()
	if err != nil {
		return err
	}
	if token == "" {
		return errors.New("no user is currently signed in")
	}

	if newUsername == "" && newEmail == "" && newPassword == "" {
		return errors.New("nothing to update")
	}
	if newUsername != "" && len(newUsername) < 2 {
		return errors.New("new username must be at least 2 characters")
	}
	if newEmail != "" && !utils.ValidateEmail(newEmail) {
		return errors.New("new email is in invalid format")
	}
	if newPassword != "" && !utils.ValidatePassword(newPassword) {
		return errors.New("new password must be at least 8 characters and contain both letters and numbers")
	}

	payload := map[string]string{
		"currentPassword": currentPassword,
		"newUsername":     newUsername,
		"newEmail":        newEmail,
		"newPassword":     newPassword,
	}
	return sendRequest("PUT", "/auth/account", &token, payload, nil)
}

// SignOut signs out the current user by removing the tokens from the system
// keyring. Tokens are stateless on the server side, so discarding them ends
// the session.
func SignOut() error {
	token, err := IsUserAuthenticated()
	if err != nil {
		return err
	}
	if token == "" {
		return errors.New("no user is currently signed in")
	}
	return ClearKeyring()
}

// DeleteUser deletes the currently authenticated user's account along with
// all of their life data, then clears the local session.
func DeleteUser() error {
	token, err := IsUserAuthenticated()
	if err != nil {
		return err
	}
	if token == "" {
		return errors.New("no user is currently signed in")
	}

	if err := sendRequest("DELETE", "/auth/account", &token, nil, nil); err != nil {
		return err
	}
	return ClearKeyring()
}
