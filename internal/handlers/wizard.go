package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/synthoshq/internal/helpers"
	"github.com/synthoshq/internal/pipeline"
	"github.com/synthoshq/internal/wizard"

	"github.com/gofiber/fiber/v2"
)

// WizardHandler exposes the signup wizard over HTTP: one state machine
// per session id, created on demand and held in memory. The machine owns
// the step ordering and the in-flight submission guard; this layer only
// routes events to it.
type WizardHandler struct {
	mu        sync.RWMutex
	sessions  map[string]*wizard.Machine
	submitter wizard.Submitter
	cfg       wizard.Config
}

func NewWizardHandler(submitter wizard.Submitter, cfg wizard.Config) *WizardHandler {
	return &WizardHandler{
		sessions:  make(map[string]*wizard.Machine),
		submitter: submitter,
		cfg:       cfg,
	}
}

func (h *WizardHandler) machine(id string) (*wizard.Machine, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	m, ok := h.sessions[id]
	return m, ok
}

// CreateSession starts a fresh wizard and returns its id.
func (h *WizardHandler) CreateSession(c *fiber.Ctx) error {
	id := helpers.GenerateUUID()
	machine := wizard.NewMachine(h.submitter, h.cfg)

	h.mu.Lock()
	h.sessions[id] = machine
	h.mu.Unlock()

	c.Status(http.StatusCreated)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":    id,
			"state": machine.Snapshot(),
		},
	})
}

// GetSession returns the current step and collected answers.
func (h *WizardHandler) GetSession(c *fiber.Ctx) error {
	machine, ok := h.machine(c.Params("id"))
	if !ok {
		return helpers.Dispatch404Error(c, "session not found", nil)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    machine.Snapshot(),
	})
}

type inputWizardSubmit struct {
	Step string `json:"step"`
	wizard.Input
}

// SubmitStep feeds one step's answers into the machine. Validation
// failures keep the wizard where it is; a platform-step success hands
// off to the submission pipeline.
func (h *WizardHandler) SubmitStep(c *fiber.Ctx) error {
	machine, ok := h.machine(c.Params("id"))
	if !ok {
		return helpers.Dispatch404Error(c, "session not found", nil)
	}

	var input inputWizardSubmit
	if err := c.BodyParser(&input); err != nil {
		return helpers.Dispatch400Error(c, "invalid payload", nil)
	}

	step, err := wizard.ParseStep(input.Step)
	if err != nil {
		return helpers.Dispatch400Error(c, err.Error(), nil)
	}

	outcome, err := machine.Submit(c.Context(), step, input.Input)
	if err != nil {
		var rerr *wizard.RuleError
		switch {
		case errors.As(err, &rerr):
			return helpers.Dispatch400Error(c, rerr.Title, fiber.Map{
				"description": rerr.Description,
			})
		case errors.Is(err, wizard.ErrSubmissionInFlight):
			c.Status(http.StatusConflict)
			return c.JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			return helpers.Dispatch400Error(c, err.Error(), nil)
		}
	}

	if outcome != nil && !outcome.OK {
		if outcome.Kind == pipeline.KindInvalidInput {
			return helpers.Dispatch400Error(c, outcome.Message, nil)
		}
		return helpers.Dispatch500Error(c, NewError(outcome.Message))
	}

	resp := fiber.Map{
		"success": true,
		"data": fiber.Map{
			"state": machine.Snapshot(),
		},
	}
	if outcome != nil {
		resp["data"].(fiber.Map)["outcome"] = outcome
	}
	return c.JSON(resp)
}

// BackStep moves the wizard one step earlier.
func (h *WizardHandler) BackStep(c *fiber.Ctx) error {
	machine, ok := h.machine(c.Params("id"))
	if !ok {
		return helpers.Dispatch404Error(c, "session not found", nil)
	}
	if err := machine.Back(); err != nil {
		return helpers.Dispatch400Error(c, err.Error(), nil)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    machine.Snapshot(),
	})
}

// ResetSession clears the wizard back to the email step.
func (h *WizardHandler) ResetSession(c *fiber.Ctx) error {
	machine, ok := h.machine(c.Params("id"))
	if !ok {
		return helpers.Dispatch404Error(c, "session not found", nil)
	}
	if err := machine.Reset(); err != nil {
		return helpers.Dispatch400Error(c, err.Error(), nil)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    machine.Snapshot(),
	})
}
