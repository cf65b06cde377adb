package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/voxpop-app/voxpop/pkg/internal/http/exts"
	"github.com/voxpop-app/voxpop/pkg/internal/services"
)

func registerAccount(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var data struct {
			Username string `json:"username" validate:"required,min=3,max=32"`
			Password string `json:"password" validate:"required,min=6,max=72"`
		}

		if err := exts.BindAndValidate(c, &data); err != nil {
			return err
		}

		account, err := auth.Register(c.UserContext(), data.Username, data.Password)
		if err != nil {
			if errors.Is(err, services.ErrNameTaken) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(account)
	}
}

func loginAccount(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var data struct {
			Username string `json:"username" validate:"required"`
			Password string `json:"password" validate:"required"`
		}

		if err := exts.BindAndValidate(c, &data); err != nil {
			return err
		}

		token, err := auth.Login(c.UserContext(), data.Username, data.Password)
		if err != nil {
			if errors.Is(err, services.ErrBadCredentials) {
				return fiber.NewError(fiber.StatusUnauthorized, err.Error())
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"token": token,
		})
	}
}
