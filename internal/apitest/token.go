package apitest

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GenerateToken signs a token for username. A signing failure is logged and
// yields an empty token, which callers must treat as unauthenticated.
func (s *Suite) GenerateToken(username string) string {
	token, err := s.Tokens.GenerateToken(username)
	if err != nil {
		s.Logger.Error("failed to generate token", zap.String("username", username), zap.Error(err))
		return ""
	}
	return token
}

// BearerHeaders returns the Authorization header for token. An empty token
// fails the test so that no request is sent unauthenticated.
func BearerHeaders(t testing.TB, token string) map[string]string {
	t.Helper()
	if token == "" {
		t.Fatalf("authentication failed: empty token")
		return nil
	}
	return map[string]string{fiber.HeaderAuthorization: "Bearer " + token}
}

// AuthHeaders signs a token for username and returns its Authorization header.
func (s *Suite) AuthHeaders(t testing.TB, username string) map[string]string {
	t.Helper()
	return BearerHeaders(t, s.GenerateToken(username))
}
