package middleware

import (
	"net/http/httptest"
	"testing"

	"learnhub/internal/auth"
	"learnhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthApp(t *testing.T) (*fiber.App, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/protected", AuthRequired(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  UserID(c),
			"username": TokenClaims(c).Username,
		})
	})
	return app, tokens
}

func issueToken(t *testing.T, tokens *auth.TokenService) string {
	t.Helper()
	token, err := tokens.Issue(&models.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	return token
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	app, _ := setupAuthApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_MalformedHeader(t *testing.T) {
	app, tokens := setupAuthApp(t)
	token := issueToken(t, tokens)

	headers := []string{
		token,             // missing scheme
		"Basic " + token,  // wrong scheme
		"Bearer",          // no token
		"Bearer ",         // empty token
		"Bearer a b",      // extra parts
	}

	for _, h := range headers {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, h)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", h)
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	app, _ := setupAuthApp(t)

	otherTokens, err := auth.NewTokenService("different-secret")
	require.NoError(t, err)
	foreign := issueToken(t, otherTokens)

	for _, token := range []string{"garbage", foreign} {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "token %q", token)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	app, tokens := setupAuthApp(t)
	token := issueToken(t, tokens)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUserID_Unauthenticated(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Empty(t, UserID(c))
		assert.Nil(t, TokenClaims(c))
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
