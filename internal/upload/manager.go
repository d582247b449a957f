// Package upload coordinates concurrent, independent file transfers for one
// guarantor record. Each selected file moves through pending -> uploading ->
// completed or error; one transfer's failure never affects its siblings.
//
// The task collection is keyed by file reference identity (name, size, and
// content type) and every mutation goes through the manager's mutex, so
// interleaved progress callbacks merge last-writer-wins onto their own task
// and never clobber unrelated ones. Progress callbacks that arrive for a task
// the user already removed are ignored.
package upload

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/lenderdesk/guarantor/internal/guarantor"
	"github.com/lenderdesk/guarantor/internal/store"
	"github.com/lenderdesk/guarantor/internal/validation"
)

// TaskStatus is the lifecycle state of one transfer.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusUploading TaskStatus = "uploading"
	StatusCompleted TaskStatus = "completed"
	StatusError     TaskStatus = "error"
)

// Task is the tracked state of one file transfer. Tasks are ephemeral: they
// live for the session and are never persisted or restored.
type Task struct {
	File       guarantor.FileInfo
	Category   guarantor.AttachmentType
	Progress   int
	Status     TaskStatus
	Error      string
	Attachment *guarantor.Attachment
}

// Manager tracks zero or more transfers for a single record.
type Manager struct {
	client   store.Client
	recordID string
	limiter  *limiter

	onComplete func(guarantor.Attachment)
	onError    func(string)

	mu    sync.Mutex
	tasks map[string]*Task
	order []string
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxConcurrent caps simultaneous transfers.
func WithMaxConcurrent(n int) Option {
	return func(m *Manager) { m.limiter = newLimiter(n, DefaultMaxWait) }
}

// WithMaxWait bounds how long a transfer waits for a free slot.
func WithMaxWait(d time.Duration) Option {
	return func(m *Manager) { m.limiter = newLimiter(cap(m.limiter.semaphore), d) }
}

// OnComplete registers a callback invoked with each resulting attachment.
func OnComplete(fn func(guarantor.Attachment)) Option {
	return func(m *Manager) { m.onComplete = fn }
}

// OnError registers a callback invoked with each per-file error message,
// including pre-upload validation rejections.
func OnError(fn func(string)) Option {
	return func(m *Manager) { m.onError = fn }
}

// NewManager builds a coordinator for the given record.
func NewManager(client store.Client, recordID string, opts ...Option) *Manager {
	m := &Manager{
		client:   client,
		recordID: recordID,
		limiter:  newLimiter(DefaultMaxConcurrent, DefaultMaxWait),
		tasks:    make(map[string]*Task),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Enqueue validates the file and, if acceptable, tracks it and begins the
// transfer. A file that fails validation is reported immediately and never
// becomes a task. Re-enqueueing a file already tracked is a no-op.
func (m *Manager) Enqueue(ctx context.Context, file guarantor.FileInfo, category guarantor.AttachmentType) error {
	if err := validation.ValidateFile(file); err != nil {
		m.reportError(err.Error())
		return err
	}

	key := file.Key()

	m.mu.Lock()
	if _, exists := m.tasks[key]; exists {
		m.mu.Unlock()
		return nil
	}
	m.tasks[key] = &Task{
		File:     file,
		Category: category,
		Status:   StatusPending,
	}
	m.order = append(m.order, key)
	m.mu.Unlock()

	go m.transfer(ctx, key, file, category)
	return nil
}

// EnqueueAll enqueues each file under the same category. Per-file validation
// failures are reported individually and do not stop the rest.
func (m *Manager) EnqueueAll(ctx context.Context, files []guarantor.FileInfo, category guarantor.AttachmentType) {
	for _, f := range files {
		// Validation failures are reported through OnError.
		_ = m.Enqueue(ctx, f, category)
	}
}

func (m *Manager) transfer(ctx context.Context, key string, file guarantor.FileInfo, category guarantor.AttachmentType) {
	if err := m.limiter.acquire(ctx); err != nil {
		m.fail(key, err.Error())
		return
	}
	defer m.limiter.release()

	att, err := m.client.UploadAttachment(ctx, m.recordID, file, category, func(pct int) {
		m.setProgress(key, pct)
	})
	if err != nil {
		slog.Warn("upload failed", "record_id", m.recordID, "filename", file.Name, "error", err)
		m.fail(key, store.MapError(err).Message)
		return
	}

	m.mu.Lock()
	if task, ok := m.tasks[key]; ok {
		task.Status = StatusCompleted
		task.Progress = 100
		task.Attachment = &att
	}
	m.mu.Unlock()

	if m.onComplete != nil {
		m.onComplete(att)
	}
}

// setProgress merges a progress callback onto its task. Late callbacks for
// removed tasks and regressions below the recorded progress are dropped.
func (m *Manager) setProgress(key string, pct int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[key]
	if !ok || pct < task.Progress {
		return
	}

	task.Progress = pct
	if pct == 100 {
		task.Status = StatusCompleted
	} else {
		task.Status = StatusUploading
	}
}

func (m *Manager) fail(key, msg string) {
	m.mu.Lock()
	if task, ok := m.tasks[key]; ok {
		task.Status = StatusError
		task.Error = msg
	}
	m.mu.Unlock()

	m.reportError(msg)
}

func (m *Manager) reportError(msg string) {
	if m.onError != nil {
		m.onError(msg)
	}
}

// Remove drops the task for the given file regardless of its status. An
// in-flight transfer is not cancelled; its eventual callbacks are ignored.
func (m *Manager) Remove(file guarantor.FileInfo) {
	key := file.Key()

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tasks, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// ClearCompleted drops all completed tasks, leaving the rest tracked.
func (m *Manager) ClearCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.order[:0]
	for _, key := range m.order {
		if m.tasks[key].Status == StatusCompleted {
			delete(m.tasks, key)
			continue
		}
		kept = append(kept, key)
	}
	m.order = kept
}

// ClearAll drops every task.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = make(map[string]*Task)
	m.order = nil
}

// Tasks returns a snapshot of all tracked tasks in enqueue order.
func (m *Manager) Tasks() []Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Task, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, *m.tasks[key])
	}
	return out
}

// TaskFor returns the task tracking the given file, if any.
func (m *Manager) TaskFor(file guarantor.FileInfo) (Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[file.Key()]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// TasksByStatus returns the tasks currently in the given status.
func (m *Manager) TasksByStatus(status TaskStatus) []Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Task
	for _, key := range m.order {
		if m.tasks[key].Status == status {
			out = append(out, *m.tasks[key])
		}
	}
	return out
}

// OverallProgress is the arithmetic mean of all tracked tasks' progress,
// rounded to the nearest integer. It is 0 when nothing is tracked.
func (m *Manager) OverallProgress() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.tasks) == 0 {
		return 0
	}

	sum := 0
	for _, task := range m.tasks {
		sum += task.Progress
	}
	return int(math.Round(float64(sum) / float64(len(m.tasks))))
}

// IsUploading reports whether any task is pending or uploading.
func (m *Manager) IsUploading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, task := range m.tasks {
		if task.Status == StatusPending || task.Status == StatusUploading {
			return true
		}
	}
	return false
}

// HasErrors reports whether any task failed.
func (m *Manager) HasErrors() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, task := range m.tasks {
		if task.Status == StatusError {
			return true
		}
	}
	return false
}

// AllCompleted reports whether at least one task is tracked and every tracked
// task completed.
func (m *Manager) AllCompleted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.tasks) == 0 {
		return false
	}
	for _, task := range m.tasks {
		if task.Status != StatusCompleted {
			return false
		}
	}
	return true
}
