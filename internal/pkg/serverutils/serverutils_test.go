package serverutils

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"brainmode-be/internal/repository/contract"
	"brainmode-be/pkg/brain"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("load: %w", contract.ErrContextNotFound), fiber.StatusNotFound},
		{"exists", fmt.Errorf("view v1: %w", contract.ErrContextExists), fiber.StatusConflict},
		{"wrong mode", brain.Default().AssertReadwrite(), fiber.StatusConflict},
		{"height", brain.AssertHeightInBounds(0), fiber.StatusUnprocessableEntity},
		{"unknown field", brain.Default().Set("colour", "red"), fiber.StatusUnprocessableEntity},
		{"validation", ValidateRequest(struct {
			Line int `validate:"required"`
		}{}), fiber.StatusUnprocessableEntity},
		{"fiber error", fiber.NewError(fiber.StatusBadRequest, "bad"), fiber.StatusBadRequest},
		{"anything else", fmt.Errorf("redis down"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func newJwtApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/", JwtMiddleware(secret), func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", ctx.Locals("user_id")))
	})
	return app
}

func TestJwtMiddlewareDisabledWithoutSecret(t *testing.T) {
	resp, err := newJwtApp("").Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJwtMiddleware(t *testing.T) {
	app := newJwtApp("s3cret")

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("s3cret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/?token="+signed, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	forged, err := token.SignedString([]byte("other"))
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
