package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"cinema_factory/helper"
	"cinema_factory/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtected(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", Protected("s3cret"), func(c *fiber.Ctx) error {
		claim, err := helper.GetInfoAccountFromToken(c)
		if err != nil {
			return err
		}
		return c.SendString(claim.Username)
	})

	valid, err := helper.GenerateAccessToken(model.TokenClaim{Username: "cfadmin"}, "s3cret", time.Hour)
	require.NoError(t, err)
	forged, err := helper.GenerateAccessToken(model.TokenClaim{Username: "cfadmin"}, "guess", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"missing", "", "", fiber.StatusUnauthorized},
		{"bearer", "Bearer " + valid, "", fiber.StatusOK},
		{"cookie", "", valid, fiber.StatusOK},
		{"wrong key", "Bearer " + forged, "", fiber.StatusUnauthorized},
		{"garbage", "Bearer abc.def", "", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.Header.Set("Cookie", "access_token="+tt.cookie)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
