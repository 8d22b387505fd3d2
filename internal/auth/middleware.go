package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/coopdesk/helpdesk-service/internal/domain"
	apperrors "github.com/coopdesk/helpdesk-service/pkg/util"
)

const principalKey = "auth_principal"

// UserLoader resolves the authenticated user behind a token. Satisfied by the
// lifecycle engine.
type UserLoader interface {
	LoadUser(ctx context.Context, email string) (*domain.User, error)
}

// AuthMiddleware validates bearer tokens and loads the engine user as the
// request principal.
type AuthMiddleware struct {
	tokens *TokenManager
	users  UserLoader
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.users.LoadUser(c.UserContext(), claims.Email)
	if err != nil {
		return apperrors.NewUnauthorized("user not found")
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated user.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
