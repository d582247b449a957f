package wizard

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lenderdesk/guarantor/internal/draft"
	"github.com/lenderdesk/guarantor/internal/guarantor"
	"github.com/lenderdesk/guarantor/internal/store"
)

// fakeClient counts submissions and can be told to fail.
type fakeClient struct {
	mu        sync.Mutex
	createErr error
	created   []guarantor.CreateInput
}

func (f *fakeClient) CreateRecord(_ context.Context, input guarantor.CreateInput) (guarantor.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return guarantor.Record{}, f.createErr
	}
	f.created = append(f.created, input)
	return guarantor.Record{ID: "rec-1", Name: input.Name, Status: guarantor.StatusPendingVerification}, nil
}

func (f *fakeClient) GetRecord(context.Context, string) (guarantor.Record, error) {
	return guarantor.Record{}, nil
}
func (f *fakeClient) UpdateRecord(context.Context, string, guarantor.UpdateInput) (guarantor.Record, error) {
	return guarantor.Record{}, nil
}
func (f *fakeClient) DeleteRecord(context.Context, string) error { return nil }
func (f *fakeClient) ListRecords(context.Context, guarantor.SearchFilters) (guarantor.PaginatedRecords, error) {
	return guarantor.PaginatedRecords{}, nil
}
func (f *fakeClient) DashboardStats(context.Context) (guarantor.DashboardStats, error) {
	return guarantor.DashboardStats{}, nil
}
func (f *fakeClient) UploadAttachment(context.Context, string, guarantor.FileInfo, guarantor.AttachmentType, store.ProgressFunc) (guarantor.Attachment, error) {
	return guarantor.Attachment{}, nil
}
func (f *fakeClient) SendForVerification(context.Context, string) (string, error) { return "", nil }
func (f *fakeClient) ExportRecords(context.Context, guarantor.SearchFilters, store.ExportFormat) ([]byte, error) {
	return nil, nil
}

// recordingNotifier captures notification calls.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) lastError() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}

func newTestWizard(t *testing.T) (*Wizard, *fakeClient, *recordingNotifier, draft.Store) {
	t.Helper()

	client := &fakeClient{}
	notifier := &recordingNotifier{}
	drafts := draft.NewFileStore(filepath.Join(t.TempDir(), "draft.json"))

	w, err := New(client, drafts, notifier, time.Hour)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(w.Close)
	return w, client, notifier, drafts
}

func fillValidForm(f *guarantor.FormData) {
	f.Name = "Jane R. Doe"
	f.Relationship = "Co-signer"
	f.Address = guarantor.Address{
		Street: "500 5th Ave", City: "New York", State: "NY", Zip: "10110",
	}
	f.DateOfBirth = time.Now().AddDate(-30, 0, 0).Format("2006-01-02")
	f.Occupation = "Architect"
	f.Employer = "Doe Designs"
}

func TestWizard_StartsAtStepOne(t *testing.T) {
	w, _, _, _ := newTestWizard(t)

	if got := w.Step(); got != StepPersonal {
		t.Errorf("Step() = %d, want %d", got, StepPersonal)
	}

	steps := w.Steps()
	if len(steps) != StepCount {
		t.Fatalf("len(Steps()) = %d, want %d", len(steps), StepCount)
	}
	if steps[0].Title != "Personal Info" || steps[4].Title != "Review" {
		t.Errorf("step titles = %q ... %q", steps[0].Title, steps[4].Title)
	}
}

func TestWizard_CompletionIsDerived(t *testing.T) {
	w, _, _, _ := newTestWizard(t)

	// An empty form: only the optional attachments step reads complete.
	if got := w.CompletedSteps(); len(got) != 1 || got[0] != StepAttachments {
		t.Errorf("CompletedSteps() = %v, want only attachments", got)
	}

	w.UpdateForm(fillValidForm)
	if got := len(w.CompletedSteps()); got != 4 {
		t.Errorf("CompletedSteps() = %d steps, want 4 after filling the form", got)
	}

	// Breaking a field un-completes its step without any navigation.
	w.UpdateForm(func(f *guarantor.FormData) { f.Name = "" })
	if w.StepCompleted(StepPersonal) {
		t.Error("StepCompleted(personal) = true after clearing name, want false")
	}
	if !w.StepCompleted(StepProfessional) {
		t.Error("StepCompleted(professional) = false, professional fields untouched")
	}
}

func TestWizard_NextGatesOnValidation(t *testing.T) {
	w, _, notifier, _ := newTestWizard(t)

	if err := w.Next(); !errors.Is(err, ErrStepIncomplete) {
		t.Fatalf("Next() on empty form = %v, want ErrStepIncomplete", err)
	}
	if w.Step() != StepPersonal {
		t.Errorf("Step() = %d after blocked Next, want unchanged", w.Step())
	}
	if notifier.lastError() != "Please complete all required fields in this step" {
		t.Errorf("notifier error = %q", notifier.lastError())
	}

	w.UpdateForm(fillValidForm)
	for want := StepProfessional; want <= StepReview; want++ {
		if err := w.Next(); err != nil {
			t.Fatalf("Next() to step %d error = %v", want, err)
		}
		if w.Step() != want {
			t.Fatalf("Step() = %d, want %d", w.Step(), want)
		}
	}

	// At review, Next is a no-op.
	if err := w.Next(); err != nil {
		t.Errorf("Next() at review = %v, want nil", err)
	}
	if w.Step() != StepReview {
		t.Errorf("Step() = %d, want to stay at review", w.Step())
	}
}

func TestWizard_PreviousAlwaysAllowed(t *testing.T) {
	w, _, _, _ := newTestWizard(t)

	w.UpdateForm(fillValidForm)
	w.Next()
	w.Next()

	w.Previous()
	if w.Step() != StepProfessional {
		t.Errorf("Step() = %d, want %d", w.Step(), StepProfessional)
	}

	w.Previous()
	w.Previous() // already at step 1; stays there
	if w.Step() != StepPersonal {
		t.Errorf("Step() = %d, want %d", w.Step(), StepPersonal)
	}
}

func TestWizard_JumpTo(t *testing.T) {
	w, _, _, _ := newTestWizard(t)

	if err := w.JumpTo(0); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("JumpTo(0) = %v, want ErrInvalidStep", err)
	}
	if err := w.JumpTo(6); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("JumpTo(6) = %v, want ErrInvalidStep", err)
	}

	// Empty form: steps 1-3 incomplete, so review is out of reach. The
	// always-complete attachments step caps what is reachable.
	if err := w.JumpTo(StepReview); !errors.Is(err, ErrStepLocked) {
		t.Errorf("JumpTo(review) on empty form = %v, want ErrStepLocked", err)
	}
	if err := w.JumpTo(StepAttachments); err != nil {
		t.Errorf("JumpTo(attachments) = %v, want nil (step 4 always complete)", err)
	}

	// Jumping backwards is always fine.
	if err := w.JumpTo(StepPersonal); err != nil {
		t.Errorf("JumpTo(personal) = %v, want nil", err)
	}

	w.UpdateForm(fillValidForm)
	if err := w.JumpTo(StepAttachments); err != nil {
		t.Errorf("JumpTo(attachments) with valid form = %v, want nil", err)
	}
}

func TestWizard_Submit_Success(t *testing.T) {
	w, client, notifier, drafts := newTestWizard(t)

	w.UpdateForm(func(f *guarantor.FormData) {
		fillValidForm(f)
		f.Name = "  Jane R. Doe  "
		f.Associations = []string{"AIA New York", "   "}
	})

	rec, err := w.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if rec.ID != "rec-1" {
		t.Errorf("record ID = %q, want rec-1", rec.ID)
	}

	// The payload was cleaned before submission.
	if len(client.created) != 1 {
		t.Fatalf("backend creates = %d, want 1", len(client.created))
	}
	sent := client.created[0]
	if sent.Name != "Jane R. Doe" {
		t.Errorf("submitted name = %q, want trimmed", sent.Name)
	}
	if len(sent.Associations) != 1 {
		t.Errorf("submitted associations = %v, want blank entries dropped", sent.Associations)
	}

	// Wizard reset, draft cleared, success notified.
	if w.Step() != StepPersonal {
		t.Errorf("Step() = %d after submit, want %d", w.Step(), StepPersonal)
	}
	if got := w.Form(); got.Name != "" {
		t.Errorf("form name = %q after submit, want reset", got.Name)
	}
	if _, ok, _ := drafts.Load(); ok {
		t.Error("draft still present after successful submit")
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.successes) != 1 || notifier.successes[0] != "Guarantor information submitted successfully" {
		t.Errorf("success notifications = %v", notifier.successes)
	}
}

func TestWizard_Submit_IncompleteForm(t *testing.T) {
	w, client, notifier, _ := newTestWizard(t)

	if _, err := w.Submit(context.Background()); !errors.Is(err, ErrStepIncomplete) {
		t.Fatalf("Submit() on empty form = %v, want ErrStepIncomplete", err)
	}
	if len(client.created) != 0 {
		t.Error("backend reached despite failing validation")
	}
	if notifier.lastError() != "Please complete all required fields before submitting" {
		t.Errorf("notifier error = %q", notifier.lastError())
	}
}

func TestWizard_Submit_BackendFailureKeepsState(t *testing.T) {
	w, client, notifier, _ := newTestWizard(t)
	client.createErr = &store.TransportError{Op: "create guarantor", StatusCode: 500}

	w.UpdateForm(fillValidForm)
	w.UpdateForm(func(f *guarantor.FormData) { f.Comments = "keep me" })

	if _, err := w.Submit(context.Background()); err == nil {
		t.Fatal("Submit() = nil error, want backend failure")
	}

	// Everything stays put so the user can retry.
	if got := w.Form(); got.Comments != "keep me" {
		t.Errorf("form comments = %q after failed submit, want preserved", got.Comments)
	}
	if notifier.lastError() == "" {
		t.Error("no error notification after backend failure")
	}

	// A retry after the backend recovers succeeds with the same form.
	client.mu.Lock()
	client.createErr = nil
	client.mu.Unlock()
	if _, err := w.Submit(context.Background()); err != nil {
		t.Errorf("retry Submit() error = %v", err)
	}
}

func TestWizard_AutosaveAndRestore(t *testing.T) {
	client := &fakeClient{}
	notifier := &recordingNotifier{}
	path := filepath.Join(t.TempDir(), "draft.json")
	drafts := draft.NewFileStore(path)

	w, err := New(client, drafts, notifier, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	w.UpdateForm(func(f *guarantor.FormData) { f.Name = "Draft Jane" })

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok, _ := drafts.Load(); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("autosave never wrote the draft")
		}
		time.Sleep(5 * time.Millisecond)
	}
	w.Close()

	saved, ok, err := drafts.Load()
	if err != nil || !ok {
		t.Fatalf("Load() = ok=%v err=%v", ok, err)
	}
	if !saved.IsDraft {
		t.Error("saved draft IsDraft = false, want true")
	}

	// A new wizard restores the draft but re-enters at step 1.
	w2, err := New(client, drafts, notifier, time.Hour)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w2.Close()

	if got := w2.Form(); got.Name != "Draft Jane" {
		t.Errorf("restored form name = %q, want Draft Jane", got.Name)
	}
	if w2.Step() != StepPersonal {
		t.Errorf("restored Step() = %d, want %d", w2.Step(), StepPersonal)
	}
}

func TestWizard_Clear(t *testing.T) {
	w, _, _, drafts := newTestWizard(t)

	w.UpdateForm(fillValidForm)
	w.Next()
	if err := drafts.Save(w.Form()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := w.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if w.Step() != StepPersonal {
		t.Errorf("Step() = %d after Clear, want %d", w.Step(), StepPersonal)
	}
	if got := w.Form(); got.Name != "" {
		t.Errorf("form name = %q after Clear, want empty", got.Name)
	}
	if _, ok, _ := drafts.Load(); ok {
		t.Error("draft still present after Clear")
	}
}
