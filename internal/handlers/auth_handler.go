package handlers

import (
	"etalase/internal/dto"
	"etalase/internal/services"
	"etalase/internal/validators"
	"etalase/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	log         *logger.Logger

	signup *validators.Chain[dto.SignupInput]
	login  *validators.Chain[dto.LoginInput]
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(d Deps) *AuthHandler {
	return &AuthHandler{
		authService: d.Auth,
		log:         d.Log,
		signup:      validators.Signup(d.Validate, d.Auth),
		login:       validators.Login(d.Validate),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.signup.Handler(), h.HandleSignup)
	authRoutes.Post("/login", h.login.Handler(), h.HandleLogin)
}

// HandleSignup handles new user registration.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	user, token, err := h.authService.Signup(c.UserContext(), validators.Input[dto.SignupInput](c))
	if err != nil {
		return err
	}
	h.log.Info().Str("user_id", user.ID).Msg("user signed up")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": user, "token": token})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	in := validators.Input[dto.LoginInput](c)
	user, token, err := h.authService.Login(c.UserContext(), in)
	if err != nil {
		h.log.Debug().Err(err).Str("email", in.Email).Msg("login failed")
		return err
	}
	return c.JSON(fiber.Map{"data": user, "token": token})
}
