package handlers

import (
	"context"

	"github.com/synthoshq/internal/helpers"
	"github.com/synthoshq/internal/models"

	"github.com/gofiber/fiber/v2"
)

// EntryLister reads waitlist entries for the admin export.
type EntryLister interface {
	ListEntries(ctx context.Context) ([]models.WaitlistEntry, error)
	CountEntries(ctx context.Context) (int64, error)
}

type AdminHandler struct {
	waitlistRepository EntryLister
}

func NewAdminHandler(waitlistRepo EntryLister) *AdminHandler {
	return &AdminHandler{
		waitlistRepository: waitlistRepo,
	}
}

// WaitlistList returns every waitlist entry, newest first. Guarded by
// the admin jwt middleware.
func (a *AdminHandler) WaitlistList(c *fiber.Ctx) error {
	entries, err := a.waitlistRepository.ListEntries(c.Context())
	if err != nil {
		return helpers.Dispatch500Error(c, NewError("failed to list waitlist"))
	}
	total, err := a.waitlistRepository.CountEntries(c.Context())
	if err != nil {
		return helpers.Dispatch500Error(c, NewError("failed to count waitlist"))
	}

	if entries == nil {
		entries = []models.WaitlistEntry{}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total":   total,
			"entries": entries,
		},
	})
}
