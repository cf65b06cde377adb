package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/voxpop-app/voxpop/pkg/internal/services"
)

func MapAPIs(app *fiber.App, polls *services.PollService, auth *services.AuthService) {
	api := app.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.Post("/register", registerAccount(auth))
			authGroup.Post("/login", loginAccount(auth))
		}

		pollGroup := api.Group("/polls")
		{
			pollGroup.Get("/", listPolls(polls))
			pollGroup.Post("/", createPoll(polls))
			pollGroup.Get("/:pollId", getPoll(polls))
			pollGroup.Post("/:pollId/vote", voteOnPoll(polls))
		}
	}
}
