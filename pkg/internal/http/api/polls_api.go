package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/voxpop-app/voxpop/pkg/internal/http/exts"
	"github.com/voxpop-app/voxpop/pkg/internal/models"
	"github.com/voxpop-app/voxpop/pkg/internal/services"
)

func createPoll(polls *services.PollService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := exts.EnsureAuthenticated(c); err != nil {
			return err
		}
		user := c.Locals("user").(models.Account)

		var data struct {
			Title   string   `json:"title" validate:"required"`
			Options []string `json:"options" validate:"required,min=2,max=5,dive,required"`
		}

		if err := exts.BindAndValidate(c, &data); err != nil {
			return err
		}

		poll, err := polls.NewPoll(c.UserContext(), data.Title, data.Options, user.ID)
		if err != nil {
			return remapPollError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(poll)
	}
}

func listPolls(polls *services.PollService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summaries, err := polls.ListPolls(c.UserContext())
		if err != nil {
			return remapPollError(err)
		}

		return c.JSON(summaries)
	}
}

func getPoll(polls *services.PollService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pollId, err := c.ParamsInt("pollId")
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, models.ErrPollNotFound.Error())
		}

		poll, err := polls.GetPoll(c.UserContext(), uint(pollId))
		if err != nil {
			return remapPollError(err)
		}

		return c.JSON(poll)
	}
}

func voteOnPoll(polls *services.PollService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := exts.EnsureAuthenticated(c); err != nil {
			return err
		}
		user := c.Locals("user").(models.Account)

		pollId, err := c.ParamsInt("pollId")
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, models.ErrPollNotFound.Error())
		}

		var data struct {
			OptionIndex *int `json:"optionIndex" validate:"required"`
		}

		if err := exts.BindAndValidate(c, &data); err != nil {
			return err
		}

		poll, err := polls.Vote(c.UserContext(), uint(pollId), *data.OptionIndex, user.ID)
		if err != nil {
			return remapPollError(err)
		}

		return c.JSON(poll)
	}
}

func remapPollError(err error) error {
	switch {
	case errors.Is(err, models.ErrPollNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		log.Error().Err(err).Msg("An error occurred when reaching the poll store...")
		return fiber.NewError(fiber.StatusServiceUnavailable, "poll store is unavailable, try again later")
	default:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
}
