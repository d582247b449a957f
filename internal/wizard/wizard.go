// Package wizard drives the five-step guarantor intake flow: personal info,
// professional info, associations, attachments, review. Forward progress is
// gated on validation, per-step completion is continuously derived from the
// current form state, and the in-progress form is auto-persisted as a draft
// after every quiet period.
package wizard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lenderdesk/guarantor/internal/draft"
	"github.com/lenderdesk/guarantor/internal/guarantor"
	"github.com/lenderdesk/guarantor/internal/store"
	"github.com/lenderdesk/guarantor/internal/validation"
)

// Wizard steps.
const (
	StepPersonal     = 1
	StepProfessional = 2
	StepAssociations = 3
	StepAttachments  = 4
	StepReview       = 5

	StepCount = 5
)

var (
	// ErrStepIncomplete means the current step's fields do not validate yet.
	ErrStepIncomplete = errors.New("current step is incomplete")

	// ErrStepLocked means the target step is past the furthest step reached.
	ErrStepLocked = errors.New("step not yet reachable")

	// ErrInvalidStep means the step id is outside 1..5.
	ErrInvalidStep = errors.New("invalid step")
)

// Notifier receives fire-and-forget success/error signals for the user-facing
// notification surface.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// StepInfo describes one wizard step for display.
type StepInfo struct {
	ID          int
	Title       string
	Description string
	Completed   bool
}

var stepDefs = [StepCount]StepInfo{
	{ID: StepPersonal, Title: "Personal Info", Description: "Name, relationship, address, and date of birth"},
	{ID: StepProfessional, Title: "Professional", Description: "Occupation, employer, and business information"},
	{ID: StepAssociations, Title: "Associations", Description: "Known associations and additional comments"},
	{ID: StepAttachments, Title: "Attachments", Description: "Upload supporting documents (optional)"},
	{ID: StepReview, Title: "Review", Description: "Review and submit guarantor information"},
}

// Wizard is the intake flow state machine.
type Wizard struct {
	client   store.Client
	drafts   draft.Store
	notifier Notifier
	autosave *draft.Debouncer

	mu   sync.Mutex
	form guarantor.FormData
	step int
}

// New builds a wizard. A previously saved draft, if any, is restored verbatim
// into the form; the flow always re-enters at step 1.
func New(client store.Client, drafts draft.Store, notifier Notifier, autosaveDebounce time.Duration) (*Wizard, error) {
	w := &Wizard{
		client:   client,
		drafts:   drafts,
		notifier: notifier,
		form:     defaultForm(),
		step:     StepPersonal,
	}

	saved, ok, err := drafts.Load()
	if err != nil {
		return nil, err
	}
	if ok {
		w.form = saved
	}

	w.autosave = draft.NewDebouncer(autosaveDebounce, w.saveDraft)
	return w, nil
}

func defaultForm() guarantor.FormData {
	return guarantor.FormData{
		CreateInput: guarantor.CreateInput{
			Associations: []string{},
		},
	}
}

// Step returns the current step id.
func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Form returns a snapshot of the in-progress form.
func (w *Wizard) Form() guarantor.FormData {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// UpdateForm applies fn to the form and restarts the autosave countdown.
func (w *Wizard) UpdateForm(fn func(*guarantor.FormData)) {
	w.mu.Lock()
	fn(&w.form)
	w.mu.Unlock()

	w.autosave.Trigger()
}

// saveDraft persists the current snapshot with the draft marker set. Autosave
// failures are logged, never surfaced; the user keeps working.
func (w *Wizard) saveDraft() {
	w.mu.Lock()
	snapshot := w.form
	snapshot.IsDraft = true
	snapshot.Step = w.step
	w.mu.Unlock()

	if err := w.drafts.Save(snapshot); err != nil {
		slog.Warn("draft autosave failed", "error", err)
	}
}

// StepCompleted reports whether the given step's fields currently satisfy its
// validation. Completion is derived, not stored: a step un-completes the
// moment its fields stop validating. The attachments step is always complete
// since uploads are optional; review has no fields of its own.
func (w *Wizard) StepCompleted(step int) bool {
	w.mu.Lock()
	form := w.form
	w.mu.Unlock()

	switch step {
	case StepPersonal, StepProfessional, StepAssociations:
		return validation.ValidateStep(step, form)
	case StepAttachments:
		return true
	default:
		return false
	}
}

// CompletedSteps returns the ids of all currently complete steps.
func (w *Wizard) CompletedSteps() []int {
	var out []int
	for step := StepPersonal; step <= StepAttachments; step++ {
		if w.StepCompleted(step) {
			out = append(out, step)
		}
	}
	return out
}

// Steps returns display info for all steps with completion flags filled in.
func (w *Wizard) Steps() []StepInfo {
	out := make([]StepInfo, StepCount)
	for i, def := range stepDefs {
		def.Completed = w.StepCompleted(def.ID)
		out[i] = def
	}
	return out
}

// Next advances one step. Steps 1-3 must validate before they can be left;
// attachments and review have no gate. At the review step Next is a no-op.
func (w *Wizard) Next() error {
	w.mu.Lock()
	step := w.step
	form := w.form
	w.mu.Unlock()

	if step >= StepReview {
		return nil
	}
	if step <= StepAssociations && !validation.ValidateStep(step, form) {
		w.notifier.Error("Please complete all required fields in this step")
		return ErrStepIncomplete
	}

	w.mu.Lock()
	if w.step < StepReview {
		w.step++
	}
	w.mu.Unlock()
	return nil
}

// Previous moves one step back and is always allowed.
func (w *Wizard) Previous() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step > StepPersonal {
		w.step--
	}
}

// JumpTo moves directly to a step the user has already reached: any step up
// to the greater of the current step and the highest completed step. Skipping
// ahead past the furthest validated step is rejected.
func (w *Wizard) JumpTo(step int) error {
	if step < StepPersonal || step > StepReview {
		return ErrInvalidStep
	}

	reachable := w.Step()
	for _, completed := range w.CompletedSteps() {
		if completed > reachable {
			reachable = completed
		}
	}
	if step > reachable {
		return ErrStepLocked
	}

	w.mu.Lock()
	w.step = step
	w.mu.Unlock()
	return nil
}

// Submit cleans the committed form data and hands it to the backend. Success
// clears the draft and resets the wizard; failure notifies the user and
// leaves all state untouched so the submission can be retried.
func (w *Wizard) Submit(ctx context.Context) (guarantor.Record, error) {
	w.mu.Lock()
	form := w.form
	w.mu.Unlock()

	for step := StepPersonal; step <= StepAssociations; step++ {
		if !validation.ValidateStep(step, form) {
			w.notifier.Error("Please complete all required fields before submitting")
			return guarantor.Record{}, ErrStepIncomplete
		}
	}

	input := validation.Clean(form.CreateInput)
	rec, err := w.client.CreateRecord(ctx, input)
	if err != nil {
		w.notifier.Error(store.MapError(err).Message)
		return guarantor.Record{}, err
	}

	w.autosave.Stop()
	if err := w.drafts.Clear(); err != nil {
		slog.Warn("clearing draft after submission failed", "error", err)
	}

	w.mu.Lock()
	w.form = defaultForm()
	w.step = StepPersonal
	w.mu.Unlock()

	w.notifier.Success("Guarantor information submitted successfully")
	return rec, nil
}

// Clear abandons the in-progress form: in-memory state returns to defaults,
// the draft is removed, and the wizard returns to step 1.
func (w *Wizard) Clear() error {
	w.autosave.Stop()

	w.mu.Lock()
	w.form = defaultForm()
	w.step = StepPersonal
	w.mu.Unlock()

	return w.drafts.Clear()
}

// Close stops the autosave timer. The wizard must not be used afterwards.
func (w *Wizard) Close() {
	w.autosave.Stop()
}
