package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-shipy/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidTokenParams is returned when a token cannot be generated
// because one of the required inputs is empty.
var ErrInvalidTokenParams = errors.New("invalid params for generating session token")

// GenerateSessionToken creates a signed HMAC-SHA256 token bound to a server-side session.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - ID        (jti): the server-side session ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the session expiry
//
// Example usage:
//
//	token, err := utils.GenerateSessionToken("shipy", sessionID, 42, expiresAt, "secret")
func GenerateSessionToken(issuer, sessionID string, userID int64, expiresAt time.Time, signKey string) (models.Token, error) {
	if issuer == "" || sessionID == "" || expiresAt.IsZero() || signKey == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	claims := models.Token{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims.RegisteredClaims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	claims.SignedString = tokenString
	return claims, nil
}

// ValidateAndParseSessionToken verifies the signature and issuer of tokenString
// and returns its claims.
//
// Only HS256 is accepted and the token must carry an expiry, a subject and a
// session ID. Extra parser options are appended, which lets callers relax
// time-based checks (for example with jwt.WithoutClaimsValidation on logout).
func ValidateAndParseSessionToken(tokenString, tokenSignKey, tokenIssuer string, opts ...jwt.ParserOption) (models.Token, error) {
	parserOpts := append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	}, opts...)

	claims := &models.Token{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, parserOpts...)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.ID == "" {
		return models.Token{}, errors.New("empty session id")
	}
	if _, err = claims.GetUserID(); err != nil {
		return models.Token{}, err
	}

	claims.SignedString = tokenString
	return *claims, nil
}
