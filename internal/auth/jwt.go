package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// secretKey signs the tokens. JWT_SECRET should be set in production;
// the fallback keeps local development working.
func secretKey() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("dev-secret-change-in-production")
}

// GenerateToken creates a new JWT for a given member ID.
func GenerateToken(memberID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": memberID,
		"exp": time.Now().Add(time.Hour * 72).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey())
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the member ID (subject) if the token is valid.
func ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return "", err // parsing failed (e.g. expired, malformed)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	memberID, ok := claims["sub"].(string)
	if !ok || memberID == "" {
		return "", errors.New("invalid subject claim")
	}
	return memberID, nil
}
