package wizard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/synthoshq/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	outcome pipeline.Outcome
	calls   int
	lastReq pipeline.Request
	block   chan struct{}
	panics  bool
}

func (f *fakeSubmitter) Submit(ctx context.Context, req pipeline.Request) pipeline.Outcome {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	block := f.block
	f.mu.Unlock()

	if f.panics {
		panic("submitter exploded")
	}
	if block != nil {
		<-block
	}
	return f.outcome
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func advanceToPlatform(t *testing.T, m *Machine) {
	t.Helper()
	_, err := m.Submit(context.Background(), StepEmail, Input{Email: "user@example.com"})
	require.NoError(t, err)
	_, err = m.Submit(context.Background(), StepOccupation, Input{Occupation: "developer"})
	require.NoError(t, err)
	require.Equal(t, StepPlatform, m.Snapshot().Step)
}

func TestMachineHappyPath(t *testing.T) {
	sub := &fakeSubmitter{outcome: pipeline.Outcome{OK: true}}
	m := NewMachine(sub, Config{})

	advanceToPlatform(t, m)

	outcome, err := m.Submit(context.Background(), StepPlatform, Input{Platform: "instagram"})
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.True(t, outcome.OK)
	assert.False(t, outcome.AlreadyRegistered)

	snap := m.Snapshot()
	assert.Equal(t, StepSuccess, snap.Step)
	assert.False(t, snap.Submitting)
	assert.Equal(t, pipeline.Request{
		Email:      "user@example.com",
		Occupation: "developer",
		Platform:   "instagram",
	}, sub.lastReq)
}

func TestMachineResolvesOtherChoices(t *testing.T) {
	sub := &fakeSubmitter{outcome: pipeline.Outcome{OK: true}}
	m := NewMachine(sub, Config{})

	_, err := m.Submit(context.Background(), StepEmail, Input{Email: "user@example.com"})
	require.NoError(t, err)
	_, err = m.Submit(context.Background(), StepOccupation, Input{
		Occupation:       OtherChoice,
		CustomOccupation: "indie hacker",
	})
	require.NoError(t, err)
	_, err = m.Submit(context.Background(), StepPlatform, Input{
		Platform:       OtherChoice,
		CustomPlatform: "farcaster",
	})
	require.NoError(t, err)

	assert.Equal(t, "indie hacker", sub.lastReq.Occupation)
	assert.Equal(t, "farcaster", sub.lastReq.Platform)
}

func TestMachineDoesNotAdvancePastFailedValidation(t *testing.T) {
	sub := &fakeSubmitter{}
	m := NewMachine(sub, Config{})

	_, err := m.Submit(context.Background(), StepEmail, Input{Email: "user@example.com"})
	require.NoError(t, err)

	_, err = m.Submit(context.Background(), StepOccupation, Input{})
	var rerr *RuleError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, StepOccupation, m.Snapshot().Step)
}

func TestMachineRejectsOtherWithoutCustomTextBeforeAnyNetworkCall(t *testing.T) {
	sub := &fakeSubmitter{}
	m := NewMachine(sub, Config{})

	_, err := m.Submit(context.Background(), StepEmail, Input{Email: "user@example.com"})
	require.NoError(t, err)

	_, err = m.Submit(context.Background(), StepOccupation, Input{Occupation: OtherChoice})
	var rerr *RuleError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Please specify your occupation", rerr.Title)
	assert.Equal(t, 0, sub.callCount())
	assert.Equal(t, StepOccupation, m.Snapshot().Step)
}

func TestMachineRejectsMismatchedStep(t *testing.T) {
	m := NewMachine(&fakeSubmitter{}, Config{})

	_, err := m.Submit(context.Background(), StepPlatform, Input{Platform: "instagram"})
	assert.ErrorIs(t, err, ErrWrongStep)
	assert.Equal(t, StepEmail, m.Snapshot().Step)
}

func TestMachineStaysOnPlatformAfterPipelineFailure(t *testing.T) {
	sub := &fakeSubmitter{outcome: pipeline.Outcome{
		Kind:    pipeline.KindDelivery,
		Message: "Failed to send confirmation email",
	}}
	m := NewMachine(sub, Config{})

	advanceToPlatform(t, m)

	outcome, err := m.Submit(context.Background(), StepPlatform, Input{Platform: "instagram"})
	require.NoError(t, err)
	assert.False(t, outcome.OK)

	snap := m.Snapshot()
	assert.Equal(t, StepPlatform, snap.Step)
	assert.False(t, snap.Submitting, "submit guard must clear after a failed pipeline run")

	// retry without re-entering earlier steps
	sub.outcome = pipeline.Outcome{OK: true, AlreadyRegistered: true}
	outcome, err = m.Submit(context.Background(), StepPlatform, Input{Platform: "instagram"})
	require.NoError(t, err)
	assert.True(t, outcome.OK)
	assert.Equal(t, StepSuccess, m.Snapshot().Step)
}

func TestMachineClearsSubmitGuardWhenSubmitterPanics(t *testing.T) {
	sub := &fakeSubmitter{panics: true}
	m := NewMachine(sub, Config{})

	advanceToPlatform(t, m)

	assert.Panics(t, func() {
		_, _ = m.Submit(context.Background(), StepPlatform, Input{Platform: "instagram"})
	})

	snap := m.Snapshot()
	assert.False(t, snap.Submitting)
	assert.Equal(t, StepPlatform, snap.Step)
}

func TestMachineRejectsConcurrentPlatformSubmit(t *testing.T) {
	sub := &fakeSubmitter{
		outcome: pipeline.Outcome{OK: true},
		block:   make(chan struct{}),
	}
	m := NewMachine(sub, Config{})

	advanceToPlatform(t, m)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = m.Submit(context.Background(), StepPlatform, Input{Platform: "instagram"})
	}()

	require.Eventually(t, func() bool {
		return m.Snapshot().Submitting
	}, time.Second, time.Millisecond)

	_, err := m.Submit(context.Background(), StepPlatform, Input{Platform: "telegram"})
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(sub.block)
	<-done

	assert.Equal(t, 1, sub.callCount())
	assert.Equal(t, StepSuccess, m.Snapshot().Step)
	assert.False(t, m.Snapshot().Submitting)
}

func TestMachineBackClearsPlatformByDefault(t *testing.T) {
	sub := &fakeSubmitter{outcome: pipeline.Outcome{
		Kind: pipeline.KindPersistence, Message: "down",
	}}
	m := NewMachine(sub, Config{})

	advanceToPlatform(t, m)

	// a failed submit leaves platform answers in place on the platform step
	_, err := m.Submit(context.Background(), StepPlatform, Input{
		Platform:       OtherChoice,
		CustomPlatform: "discord",
	})
	require.NoError(t, err)

	require.NoError(t, m.Back())
	snap := m.Snapshot()
	assert.Equal(t, StepOccupation, snap.Step)
	assert.Empty(t, snap.Fields.Platform)
	assert.Empty(t, snap.Fields.CustomPlatform)
	assert.Equal(t, "user@example.com", snap.Fields.Email)
	assert.Equal(t, "developer", snap.Fields.Occupation)

	// resubmitting with different platform data must not bleed stale answers
	sub.outcome = pipeline.Outcome{OK: true}
	_, err = m.Submit(context.Background(), StepOccupation, Input{Occupation: "developer"})
	require.NoError(t, err)
	_, err = m.Submit(context.Background(), StepPlatform, Input{Platform: "instagram"})
	require.NoError(t, err)

	assert.Equal(t, "instagram", sub.lastReq.Platform)
	assert.Equal(t, "user@example.com", sub.lastReq.Email)
	assert.Equal(t, "developer", sub.lastReq.Occupation)
}

func TestMachineBackKeepsPlatformWhenConfigured(t *testing.T) {
	m := NewMachine(&fakeSubmitter{}, Config{KeepPlatformOnBack: true})

	advanceToPlatform(t, m)
	_, err := m.Submit(context.Background(), StepPlatform, Input{Platform: ""})
	require.Error(t, err)

	// put an answer in place via a failing pipeline run
	sub := &fakeSubmitter{outcome: pipeline.Outcome{Kind: pipeline.KindPersistence}}
	m = NewMachine(sub, Config{KeepPlatformOnBack: true})
	advanceToPlatform(t, m)
	_, err = m.Submit(context.Background(), StepPlatform, Input{Platform: "telegram"})
	require.NoError(t, err)

	require.NoError(t, m.Back())
	assert.Equal(t, "telegram", m.Snapshot().Fields.Platform)
}

func TestMachineBackAvailability(t *testing.T) {
	m := NewMachine(&fakeSubmitter{outcome: pipeline.Outcome{OK: true}}, Config{})

	assert.ErrorIs(t, m.Back(), ErrBackUnavailable)

	_, err := m.Submit(context.Background(), StepEmail, Input{Email: "user@example.com"})
	require.NoError(t, err)
	require.NoError(t, m.Back())
	assert.Equal(t, StepEmail, m.Snapshot().Step)
}

func TestMachineResetIsOnlyExitFromSuccess(t *testing.T) {
	sub := &fakeSubmitter{outcome: pipeline.Outcome{OK: true}}
	m := NewMachine(sub, Config{})

	advanceToPlatform(t, m)
	_, err := m.Submit(context.Background(), StepPlatform, Input{Platform: "instagram"})
	require.NoError(t, err)
	require.Equal(t, StepSuccess, m.Snapshot().Step)

	assert.ErrorIs(t, m.Back(), ErrBackUnavailable)
	_, err = m.Submit(context.Background(), StepEmail, Input{Email: "again@example.com"})
	assert.ErrorIs(t, err, ErrWrongStep)

	require.NoError(t, m.Reset())
	snap := m.Snapshot()
	assert.Equal(t, StepEmail, snap.Step)
	assert.Equal(t, Fields{}, snap.Fields)
}

func TestParseStep(t *testing.T) {
	for _, valid := range []string{"email", "occupation", "platform"} {
		step, err := ParseStep(valid)
		require.NoError(t, err)
		assert.Equal(t, Step(valid), step)
	}

	_, err := ParseStep("success")
	assert.ErrorIs(t, err, ErrUnknownStep)
	_, err = ParseStep("nope")
	assert.ErrorIs(t, err, ErrUnknownStep)
}
