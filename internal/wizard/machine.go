package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/synthoshq/internal/pipeline"
)

// Step is one screen of the signup wizard.
type Step string

const (
	StepEmail      Step = "email"
	StepOccupation Step = "occupation"
	StepPlatform   Step = "platform"
	StepSuccess    Step = "success"
)

var (
	ErrWrongStep          = errors.New("submitted step does not match current step")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrBackUnavailable    = errors.New("cannot go back from this step")
	ErrUnknownStep        = errors.New("unknown step")
)

// ParseStep maps a wire value onto a submittable step.
func ParseStep(s string) (Step, error) {
	switch Step(s) {
	case StepEmail, StepOccupation, StepPlatform:
		return Step(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStep, s)
}

var occupationMessages = ChoiceMessages{
	Missing: RuleError{
		Title:       "Please select an occupation",
		Description: "Select your occupation or choose 'Other' to specify",
	},
	MissingCustom: RuleError{
		Title:       "Please specify your occupation",
		Description: "Enter your occupation in the field provided",
	},
}

var platformMessages = ChoiceMessages{
	Missing: RuleError{
		Title:       "Please select a platform",
		Description: "Select your preferred platform or choose 'Other' to specify",
	},
	MissingCustom: RuleError{
		Title:       "Please specify your platform",
		Description: "Enter your preferred platform in the field provided",
	},
}

// Submitter hands a completed form to the submission pipeline.
type Submitter interface {
	Submit(ctx context.Context, req pipeline.Request) pipeline.Outcome
}

// Fields are the answers collected across steps.
type Fields struct {
	Email            string `json:"email"`
	Occupation       string `json:"occupation"`
	CustomOccupation string `json:"custom_occupation"`
	Platform         string `json:"platform"`
	CustomPlatform   string `json:"custom_platform"`
}

// Input is one step's payload. Only the fields for the submitted step
// are read.
type Input struct {
	Email            string `json:"email"`
	Occupation       string `json:"occupation"`
	CustomOccupation string `json:"custom_occupation"`
	Platform         string `json:"platform"`
	CustomPlatform   string `json:"custom_platform"`
}

// Config tunes behavior that varied between landing page revisions.
type Config struct {
	// KeepPlatformOnBack leaves the platform answers in place when the
	// user backs out of the platform step. Default clears them so a
	// hidden stale "other" text can never ride along on resubmit.
	KeepPlatformOnBack bool
}

// Snapshot is a read-only view of the machine for the session API.
type Snapshot struct {
	Step       Step   `json:"step"`
	Fields     Fields `json:"fields"`
	Submitting bool   `json:"submitting"`
}

// Machine is the wizard state machine: a strict linear
// email → occupation → platform → success progression where each step is
// gated by its validation rule, and success is reachable only through a
// successful pipeline outcome.
type Machine struct {
	mu        sync.Mutex
	submitter Submitter
	cfg       Config

	step       Step
	fields     Fields
	submitting bool
}

func NewMachine(submitter Submitter, cfg Config) *Machine {
	return &Machine{
		submitter: submitter,
		cfg:       cfg,
		step:      StepEmail,
	}
}

// Submit applies one step's payload. A validation failure returns a
// *RuleError and leaves the machine exactly where it was. The platform
// step does not advance locally; the injected Submitter decides, and
// only an OK outcome moves the machine to success so a failed pipeline
// can be retried without re-entering earlier answers.
func (m *Machine) Submit(ctx context.Context, step Step, input Input) (*pipeline.Outcome, error) {
	m.mu.Lock()

	if step != m.step {
		current := m.step
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: machine is on %q", ErrWrongStep, current)
	}

	switch step {
	case StepEmail:
		if rerr := ValidateEmail(input.Email); rerr != nil {
			m.mu.Unlock()
			return nil, rerr
		}
		m.fields.Email = input.Email
		m.step = StepOccupation
		m.mu.Unlock()
		return nil, nil

	case StepOccupation:
		if rerr := ValidateSingleChoice(input.Occupation, input.CustomOccupation, occupationMessages); rerr != nil {
			m.mu.Unlock()
			return nil, rerr
		}
		m.fields.Occupation = input.Occupation
		m.fields.CustomOccupation = input.CustomOccupation
		m.step = StepPlatform
		m.mu.Unlock()
		return nil, nil

	case StepPlatform:
		if rerr := ValidateSingleChoice(input.Platform, input.CustomPlatform, platformMessages); rerr != nil {
			m.mu.Unlock()
			return nil, rerr
		}
		if m.submitting {
			// exactly one pipeline call may be outstanding; extra
			// submits are dropped, not queued
			m.mu.Unlock()
			return nil, ErrSubmissionInFlight
		}
		m.fields.Platform = input.Platform
		m.fields.CustomPlatform = input.CustomPlatform
		m.submitting = true
		req := pipeline.Request{
			Email:      m.fields.Email,
			Occupation: effectiveChoice(m.fields.Occupation, m.fields.CustomOccupation),
			Platform:   effectiveChoice(m.fields.Platform, m.fields.CustomPlatform),
		}
		m.mu.Unlock()

		var outcome pipeline.Outcome
		func() {
			defer func() {
				m.mu.Lock()
				m.submitting = false
				if outcome.OK {
					m.step = StepSuccess
				}
				m.mu.Unlock()
			}()
			outcome = m.submitter.Submit(ctx, req)
		}()
		return &outcome, nil
	}

	current := m.step
	m.mu.Unlock()
	return nil, fmt.Errorf("%w: machine is on %q", ErrWrongStep, current)
}

// Back moves one step earlier. Valid only from occupation or platform.
func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.step {
	case StepOccupation:
		m.step = StepEmail
	case StepPlatform:
		if !m.cfg.KeepPlatformOnBack {
			m.fields.Platform = ""
			m.fields.CustomPlatform = ""
		}
		m.step = StepOccupation
	default:
		return ErrBackUnavailable
	}
	return nil
}

// Reset returns the machine to the email step with all answers cleared.
// This is the only way out of success.
func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.submitting {
		return ErrSubmissionInFlight
	}
	m.step = StepEmail
	m.fields = Fields{}
	return nil
}

func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Step:       m.step,
		Fields:     m.fields,
		Submitting: m.submitting,
	}
}

// effectiveChoice resolves the "other" sentinel to the free-text answer.
func effectiveChoice(selected, custom string) string {
	if selected == OtherChoice {
		return custom
	}
	return selected
}
