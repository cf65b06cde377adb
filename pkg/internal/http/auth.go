package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/voxpop-app/voxpop/pkg/internal/models"
)

// TokenResolver is the identity collaborator as the HTTP layer sees it:
// credential in, verified account out. Handler tests substitute a fake.
type TokenResolver interface {
	Authenticate(ctx context.Context, token string) (models.Account, error)
}

// authenticate resolves the bearer token, if any, and parks the account in
// the request locals. Routes that require auth check the locals afterwards;
// public routes just ignore them.
func authenticate(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && len(token) > 0 {
			if user, err := resolver.Authenticate(c.UserContext(), token); err == nil {
				c.Locals("user", user)
			}
		}

		return c.Next()
	}
}
