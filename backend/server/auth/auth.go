package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/mhasan/lifeos/backend/models"
	storage "github.com/mhasan/lifeos/backend/storage/persistent"
	"github.com/mhasan/lifeos/lib/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// store is a global variable that holds an interface to the storage system.
var store storage.StorageInterface

// jwtSigningKey is a global variable that holds the key used for signing and
// verifying JWT tokens.
var jwtSigningKey string

// Token lifetimes. The short-lived auth token rides on every request; the
// refresh token lets a session outlive it without re-entering a password.
const (
	authTokenLifetime    = 15 * time.Minute
	refreshTokenLifetime = 7 * 24 * time.Hour
)

// InitAuth initializes the authentication system with the given storage
// backend and JWT signing key. It must be called before any other function
// in this package.
func InitAuth(st storage.StorageInterface, signingKey string) {
	store = st
	jwtSigningKey = signingKey
}

// CreateAuthToken creates a signed short-lived JWT for the given user id.
func CreateAuthToken(userId string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userId,
		"exp": time.Now().Add(authTokenLifetime).Unix(),
	}

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := newToken.SignedString([]byte(jwtSigningKey))
	if err != nil {
		return "", errors.New("failed to create auth token")
	}

	return signedToken, nil
}

// CreateRefreshToken creates a signed long-lived refresh JWT for the given
// user id.
func CreateRefreshToken(userId string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userId,
		"exp": time.Now().Add(refreshTokenLifetime).Unix(),
	}

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := newToken.SignedString([]byte(jwtSigningKey))
	if err != nil {
		return "", errors.New("failed to create refresh token")
	}

	return signedToken, nil
}

// CreateTokens creates an auth token and a refresh token for the given user.
func CreateTokens(userId string) (string, string, error) {
	authToken, authErr := CreateAuthToken(userId)
	if authErr != nil {
		return "", "", authErr
	}

	refreshToken, refreshErr := CreateRefreshToken(userId)
	if refreshErr != nil {
		return "", "", refreshErr
	}

	return authToken, refreshToken, nil
}

// SignIn authenticates a user by username and password and returns a fresh
// pair of tokens. The same generic error is returned whether the username is
// unknown or the password is wrong.
func SignIn(username string, password string) (string, string, error) {
	if len(username) < 2 {
		return "", "", errors.New("invalid username")
	}

	foundUser, err := store.FindUser(context.Background(), bson.M{"username": username})
	if err != nil {
		return "", "", errors.New("authentication failed")
	}

	err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password))
	if err != nil {
		return "", "", errors.New("authentication failed")
	}

	return CreateTokens(foundUser.ID.Hex())
}

// SignUp registers a new user and returns a fresh pair of tokens. It
// validates the username, email, and password, rejects duplicate accounts,
// and stores only a bcrypt hash of the password.
func SignUp(username string, email string, password string) (string, string, error) {
	if len(username) < 2 {
		return "", "", errors.New("invalid username")
	}

	if !utils.ValidateEmail(email) {
		return "", "", errors.New("invalid email format")
	}

	if !utils.ValidatePassword(password) {
		return "", "", errors.New("password must be at least 8 characters and contain both letters and numbers")
	}

	foundUser, err := store.FindUser(context.Background(), bson.M{"email": email})
	if err != nil && err != mongo.ErrNoDocuments {
		return "", "", err
	}
	if foundUser != nil {
		return "", "", errors.New("an account with this email already exists")
	}

	foundUser, err = store.FindUser(context.Background(), bson.M{"username": username})
	if err != nil && err != mongo.ErrNoDocuments {
		return "", "", err
	}
	if foundUser != nil {
		return "", "", errors.New("username is taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	user := &models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if _, err = store.AddUser(context.Background(), user); err != nil {
		return "", "", err
	}

	return CreateTokens(user.ID.Hex())
}

// RefreshToken validates a refresh token and, if it is valid and belongs to
// the given user, returns a new pair of tokens.
func RefreshToken(userId string, refreshToken string) (string, string, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSigningKey), nil
	})

	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok {
			if ve.Errors == jwt.ValidationErrorExpired {
				return "", "", errors.New("expired refresh token")
			}
		}
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid refresh token")
	}

	if claims["id"] != userId {
		return "", "", errors.New("invalid refresh token")
	}

	return CreateTokens(userId)
}

// UpdateUser updates a user's username, email, and/or password after
// re-authenticating with the current password. Empty fields are left
// unchanged.
func UpdateUser(userId, currentPassword, newUsername, newEmail, newPassword string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return false, err
	}

	foundUser, err := store.FindUser(context.Background(), bson.M{"_id": objectID})
	if err != nil {
		return false, errors.New("authentication failed")
	}

	err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(currentPassword))
	if err != nil {
		return false, errors.New("authentication failed")
	}

	update := bson.M{
		"$set": bson.M{},
	}

	if newUsername != "" {
		existingUser, err := store.FindUser(context.Background(), bson.M{"username": newUsername})
		if existingUser != nil || err == nil {
			return false, errors.New("username already in use")
		}
		update["$set"].(bson.M)["username"] = newUsername
	}

	if newEmail != "" {
		existingUser, err := store.FindUser(context.Background(), bson.M{"email": newEmail})
		if existingUser != nil || err == nil {
			return false, errors.New("email already in use")
		}
		update["$set"].(bson.M)["email"] = newEmail
	}

	if newPassword != "" {
		if !utils.ValidatePassword(newPassword) {
			return false, errors.New("password must be at least 8 characters and contain both letters and numbers")
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return false, err
		}
		update["$set"].(bson.M)["password_hash"] = string(hashedPassword)
	}

	if len(update["$set"].(bson.M)) == 0 {
		return false, errors.New("nothing to update")
	}

	if _, err = store.UpdateUser(context.Background(), bson.M{"_id": objectID}, update); err != nil {
		return false, errors.New("internal server error updating user")
	}

	return true, nil
}

// DeleteUser removes a user account along with the user's life data.
func DeleteUser(userId string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return false, err
	}

	if _, err = store.DeleteUser(context.Background(), bson.M{"_id": objectID}); err != nil {
		return false, errors.New("error deleting user")
	}

	return true, nil
}
