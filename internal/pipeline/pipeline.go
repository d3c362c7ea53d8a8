// Package pipeline runs the server-side waitlist submission:
// validate → duplicate check → persist → confirmation email. The stages
// are not transactional; a delivery failure is reported even though the
// entry was already persisted. That asymmetry is deliberate: the user
// retries, the duplicate check turns it into an idempotent success, and
// a durable retry queue was judged out of proportion for a landing page.
package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/synthoshq/internal/models"
	"github.com/synthoshq/internal/repository"
)

// FailureKind classifies a failed submission so the client can choose
// between field-level correction (invalid input) and a retry prompt.
type FailureKind string

const (
	KindNone         FailureKind = ""
	KindInvalidInput FailureKind = "invalid_input"
	KindPersistence  FailureKind = "persistence_failure"
	KindDelivery     FailureKind = "delivery_failure"
	KindUnreachable  FailureKind = "unreachable"
)

// Request is a completed signup form.
type Request struct {
	Email      string `json:"email"`
	Occupation string `json:"occupation"`
	Platform   string `json:"platform"`
}

// Outcome is the single result type the pipeline reports. A duplicate
// signup is an OK outcome with AlreadyRegistered set, never an error.
type Outcome struct {
	OK                bool        `json:"ok"`
	AlreadyRegistered bool        `json:"already_registered,omitempty"`
	Kind              FailureKind `json:"kind,omitempty"`
	Message           string      `json:"message,omitempty"`
}

// TemplateData is interpolated into the confirmation email.
type TemplateData struct {
	Occupation string
	Platform   string
}

// EntryStore is the persistence collaborator. CreateEntry must report a
// unique-violation as repository.ErrAlreadyExists so the check-then-create
// race collapses into the idempotent duplicate path.
type EntryStore interface {
	FindByEmail(ctx context.Context, email string) (*models.WaitlistEntry, bool, error)
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) error
}

// ConfirmationSender dispatches the signup confirmation email.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, to string, data TemplateData) error
}

type Pipeline struct {
	store  EntryStore
	sender ConfirmationSender
}

func NewPipeline(store EntryStore, sender ConfirmationSender) *Pipeline {
	return &Pipeline{store: store, sender: sender}
}

// Submit runs the four stages in order. Each stage can fail
// independently; nothing retries automatically.
func (p *Pipeline) Submit(ctx context.Context, req Request) Outcome {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	// stage 1: server-side re-check, no side effects
	if email == "" || !strings.Contains(email, "@") {
		return Outcome{Kind: KindInvalidInput, Message: "Invalid email address"}
	}

	// stage 2: duplicate check; a hit short-circuits as success
	_, exists, err := p.store.FindByEmail(ctx, email)
	if err != nil {
		return p.failure("duplicate check", err, KindPersistence)
	}
	if exists {
		return Outcome{OK: true, AlreadyRegistered: true}
	}

	// stage 3: persist; a write-time unique violation is the same
	// duplicate outcome, which closes the check-then-create race
	entry := &models.WaitlistEntry{
		Email:      email,
		Occupation: req.Occupation,
		Platform:   req.Platform,
	}
	if err := p.store.CreateEntry(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return Outcome{OK: true, AlreadyRegistered: true}
		}
		return p.failure("persist", err, KindPersistence)
	}

	// stage 4: confirmation email; the entry above stays persisted
	// even when this fails
	data := TemplateData{Occupation: req.Occupation, Platform: req.Platform}
	if err := p.sender.SendConfirmation(ctx, email, data); err != nil {
		return p.failure("confirmation email", err, KindDelivery)
	}

	return Outcome{OK: true}
}

// failure logs the diagnostic detail and returns a safe outcome. The
// user-facing message never carries internal error text.
func (p *Pipeline) failure(stage string, err error, kind FailureKind) Outcome {
	log.Printf("waitlist pipeline: %s failed: %v", stage, err)

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Outcome{
			Kind:    KindUnreachable,
			Message: "Service unreachable, please try again later",
		}
	}

	switch kind {
	case KindDelivery:
		return Outcome{Kind: kind, Message: "Failed to send confirmation email"}
	default:
		return Outcome{Kind: kind, Message: "Something went wrong, please try again later"}
	}
}
