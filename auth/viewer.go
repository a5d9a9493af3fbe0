package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	"github.com/tvuforum/syncGo/interactions"
)

// ParseViewer extracts the viewer identity from a bearer token. The signature
// is not verified here: the server owns verification, the client only needs
// the identity claims to drive optimistic state.
func ParseViewer(token string) (*interactions.Viewer, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parsing bearer token: %w", err)
	}

	viewer := &interactions.Viewer{}
	if sub, ok := claims["sub"].(string); ok {
		viewer.UserId = sub
	}
	if id, ok := claims["userId"].(string); ok && len(viewer.UserId) == 0 {
		viewer.UserId = id
	}
	if name, ok := claims["name"].(string); ok {
		viewer.Name = name
	}
	if url, ok := claims["photoUrl"].(string); ok {
		viewer.PhotoUrl = url
	}

	if len(viewer.UserId) == 0 {
		return nil, fmt.Errorf("bearer token carries no user id")
	}
	return viewer, nil
}
