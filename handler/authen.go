package handler

import (
	"time"

	"cinema_factory/config"
	"cinema_factory/helper"
	"cinema_factory/model"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type AuthHandler struct {
	username     string
	passwordHash string
	secret       string
	ttl          time.Duration
}

// NewAuthHandler hashes a plain ADMIN_PASSWORD once so every login goes through bcrypt.
func NewAuthHandler(cfg config.AuthConfig) (*AuthHandler, error) {
	hash := cfg.AdminPasswordHash
	if hash == "" {
		var err error
		if hash, err = helper.HashPassword(cfg.AdminPassword); err != nil {
			return nil, err
		}
	}
	return &AuthHandler{
		username:     cfg.AdminUsername,
		passwordHash: hash,
		secret:       cfg.JWTSecret,
		ttl:          cfg.TokenTTL,
	}, nil
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	input := c.Locals("loginInput").(model.LoginInput)

	if input.Username != h.username || !helper.CheckPasswordHash(input.Password, h.passwordHash) {
		log.Warnw("admin login rejected", "username", input.Username, "ip", c.IP())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid credentials",
		})
	}

	token, err := helper.GenerateAccessToken(model.TokenClaim{Username: input.Username}, h.secret, h.ttl)
	if err != nil {
		log.Errorw("sign admin token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(h.ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"success": true, "token": token})
}
