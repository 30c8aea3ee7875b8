package middleware

import (
	"errors"

	"github.com/brainlink-app/brainlink-backend/internal/config"
	"github.com/brainlink-app/brainlink-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// JWTProtectedQuery verifies the token from the "token" query parameter.
// Browsers cannot set headers on websocket upgrades, so the push channel
// authenticates this way.
func JWTProtectedQuery(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "query:token",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// StashUsername copies the username claim into a plain context local so
// handlers that only see locals (the websocket handler) can read it without
// parsing the token again.
func StashUsername(c *fiber.Ctx) error {
	username, err := CurrentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Unauthorized: invalid or expired token",
		})
	}
	c.Locals("username", username)
	return c.Next()
}

func claims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return mapClaims, nil
}

// CurrentUserID extracts the user UUID from JWT claims in context.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	mapClaims, err := claims(c)
	if err != nil {
		return uuid.Nil, err
	}
	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

// CurrentUsername extracts the username from JWT claims in context.
func CurrentUsername(c *fiber.Ctx) (string, error) {
	mapClaims, err := claims(c)
	if err != nil {
		return "", err
	}
	username, ok := mapClaims["username"].(string)
	if !ok || username == "" {
		return "", errors.New("missing username claim")
	}
	return username, nil
}
