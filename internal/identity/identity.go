// Package identity extracts a user profile from a Google Sign-In
// credential. The token's signature is not verified: the profile only
// drives display and the admin-list lookup, exactly like the browser
// client that decoded the payload segment by hand.
package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoEmail = errors.New("credential carries no email claim")

type Profile struct {
	Email   string
	Name    string
	Picture string
}

func Decode(credential string) (Profile, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return Profile{}, fmt.Errorf("decode credential: %w", err)
	}

	profile := Profile{
		Email:   stringClaim(claims, "email"),
		Name:    stringClaim(claims, "name"),
		Picture: stringClaim(claims, "picture"),
	}
	if profile.Email == "" {
		return Profile{}, ErrNoEmail
	}
	return profile, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
