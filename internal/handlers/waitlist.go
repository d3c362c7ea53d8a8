package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/synthoshq/internal/capacity"
	"github.com/synthoshq/internal/helpers"
	"github.com/synthoshq/internal/models"
	"github.com/synthoshq/internal/pipeline"
	"github.com/synthoshq/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AppError struct {
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}
func NewError(message string) *AppError {
	return &AppError{
		Message: message,
	}
}

// Submitter runs the waitlist submission pipeline.
type Submitter interface {
	Submit(ctx context.Context, req pipeline.Request) pipeline.Outcome
}

// SubscriberStore persists email-only captures.
type SubscriberStore interface {
	CreateSubscriber(ctx context.Context, sub *models.Subscriber) error
}

type WaitlistHandler struct {
	pipeline    Submitter
	gate        *capacity.Gate
	subscribers SubscriberStore
}

func NewWaitlistHandler(pipe Submitter, gate *capacity.Gate, subscribers SubscriberStore) *WaitlistHandler {
	return &WaitlistHandler{
		pipeline:    pipe,
		gate:        gate,
		subscribers: subscribers,
	}
}

// WaitlistCreate runs the full submission pipeline for a completed form.
func (u *WaitlistHandler) WaitlistCreate(c *fiber.Ctx) error {
	var input helpers.InputSubmitWaitlist
	if err := c.BodyParser(&input); err != nil {
		return helpers.Dispatch400Error(c, "invalid payload", nil)
	}

	if err := helpers.ValidateBody(input); err != nil {
		return helpers.Dispatch400Error(c, err.Error(), nil)
	}

	outcome := u.pipeline.Submit(c.Context(), pipeline.Request{
		Email:      input.Email,
		Occupation: input.Occupation,
		Platform:   input.Platform,
	})

	if !outcome.OK {
		if outcome.Kind == pipeline.KindInvalidInput {
			return helpers.Dispatch400Error(c, outcome.Message, nil)
		}
		return helpers.Dispatch500Error(c, NewError(outcome.Message))
	}

	message := "Added successfully"
	if outcome.AlreadyRegistered {
		message = "You are already on the waitlist"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data": fiber.Map{
			"email":              input.Email,
			"already_registered": outcome.AlreadyRegistered,
		},
	})
}

// WaitlistCount reports the advisory remaining-spots indicator. A failure
// here must never block the form, so the client treats a 500 as "omit
// the indicator".
func (u *WaitlistHandler) WaitlistCount(c *fiber.Ctx) error {
	remaining, err := u.gate.Remaining(c.Context())
	if err != nil {
		log.Printf("waitlist count: %v", err)
		return helpers.Dispatch500Error(c, NewError("failed to fetch waitlist count"))
	}
	return c.JSON(fiber.Map{
		"remaining_spots": remaining,
	})
}

// Subscribe is the simplified email-only capture. Duplicate emails are an
// idempotent success, same as the full pipeline.
func (u *WaitlistHandler) Subscribe(c *fiber.Ctx) error {
	var input helpers.InputSubscribe
	if err := c.BodyParser(&input); err != nil {
		return helpers.Dispatch400Error(c, "invalid payload", nil)
	}

	if err := helpers.ValidateBody(input); err != nil {
		return helpers.Dispatch400Error(c, err.Error(), nil)
	}

	err := u.subscribers.CreateSubscriber(c.Context(), &models.Subscriber{Email: input.Email})
	if err != nil && !errors.Is(err, repository.ErrAlreadyExists) {
		log.Printf("subscribe: %v", err)
		return helpers.Dispatch500Error(c, NewError("failed to process subscription"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Subscription successful",
		"data": fiber.Map{
			"email": input.Email,
		},
	})
}

// NotFound returns custom 404 page
func NotFound(c *fiber.Ctx) error {
	return c.Status(404).SendFile("./static/private/404.html")
}
