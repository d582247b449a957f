package store

// fixture.go implements the in-process backend. It serves a deterministic
// seed snapshot so list, dashboard, and export behavior can be exercised
// without a running intake API. Mutations operate on copies of the snapshot;
// the snapshot itself never changes between calls.

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lenderdesk/guarantor/internal/guarantor"
)

// RecentSubmissionCount is how many records DashboardStats returns as recent.
const RecentSubmissionCount = 3

// Fixture is the in-memory Client implementation.
type Fixture struct {
	records     []guarantor.Record
	submittedBy string

	// progressTick paces simulated upload progress. Zero means no pacing,
	// which tests rely on.
	progressTick time.Duration

	now func() time.Time
}

// FixtureOption configures a Fixture.
type FixtureOption func(*Fixture)

// WithRecords replaces the seed snapshot.
func WithRecords(records []guarantor.Record) FixtureOption {
	return func(f *Fixture) { f.records = records }
}

// WithSubmittedBy sets the session identity stamped onto created records.
func WithSubmittedBy(identity string) FixtureOption {
	return func(f *Fixture) { f.submittedBy = identity }
}

// WithProgressTick sets the delay between simulated upload progress steps.
func WithProgressTick(d time.Duration) FixtureOption {
	return func(f *Fixture) { f.progressTick = d }
}

// WithClock overrides the time source. Tests use this to pin timestamps.
func WithClock(now func() time.Time) FixtureOption {
	return func(f *Fixture) { f.now = now }
}

// NewFixture builds a fixture backend over the default seed records.
func NewFixture(opts ...FixtureOption) *Fixture {
	f := &Fixture{
		records:     SeedRecords(),
		submittedBy: "current_user",
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRecord assigns a fresh identifier and stamps the submission metadata.
// It never fails for well-formed input.
func (f *Fixture) CreateRecord(_ context.Context, input guarantor.CreateInput) (guarantor.Record, error) {
	rec := guarantor.Record{
		ID:                  uuid.New().String(),
		Name:                input.Name,
		Relationship:        input.Relationship,
		Address:             input.Address,
		DateOfBirth:         input.DateOfBirth,
		Occupation:          input.Occupation,
		Employer:            input.Employer,
		LinkedIn:            input.LinkedIn,
		RegistrationNumber:  input.RegistrationNumber,
		Associations:        input.Associations,
		Comments:            input.Comments,
		SubmissionTimestamp: f.now(),
		SubmittedBy:         f.submittedBy,
		Status:              guarantor.StatusPendingVerification,
	}
	if rec.Associations == nil {
		rec.Associations = []string{}
	}

	slog.Debug("fixture: created record", "id", rec.ID, "name", rec.Name)
	return rec, nil
}

// GetRecord returns the seed record with the given id.
func (f *Fixture) GetRecord(_ context.Context, id string) (guarantor.Record, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return guarantor.Record{}, &NotFoundError{Resource: "guarantor", ID: id}
}

// UpdateRecord shallow-merges patch onto the seed record and returns the
// result. The merge is not persisted; each call re-derives from the snapshot.
func (f *Fixture) UpdateRecord(ctx context.Context, id string, patch guarantor.UpdateInput) (guarantor.Record, error) {
	rec, err := f.GetRecord(ctx, id)
	if err != nil {
		return guarantor.Record{}, err
	}

	if patch.Name != nil {
		rec.Name = *patch.Name
	}
	if patch.Relationship != nil {
		rec.Relationship = *patch.Relationship
	}
	if patch.Address != nil {
		rec.Address = *patch.Address
	}
	if patch.DateOfBirth != nil {
		rec.DateOfBirth = *patch.DateOfBirth
	}
	if patch.Occupation != nil {
		rec.Occupation = *patch.Occupation
	}
	if patch.Employer != nil {
		rec.Employer = *patch.Employer
	}
	if patch.LinkedIn != nil {
		rec.LinkedIn = *patch.LinkedIn
	}
	if patch.RegistrationNumber != nil {
		rec.RegistrationNumber = *patch.RegistrationNumber
	}
	if patch.Associations != nil {
		rec.Associations = *patch.Associations
	}
	if patch.Comments != nil {
		rec.Comments = *patch.Comments
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}

	return rec, nil
}

// DeleteRecord succeeds when the record exists in the snapshot.
func (f *Fixture) DeleteRecord(ctx context.Context, id string) error {
	_, err := f.GetRecord(ctx, id)
	return err
}

// ListRecords runs the filter pipeline over the snapshot.
func (f *Fixture) ListRecords(_ context.Context, filters guarantor.SearchFilters) (guarantor.PaginatedRecords, error) {
	filtered := filterRecords(f.records, filters)
	return paginate(filtered, filters), nil
}

// DashboardStats aggregates status counts and the most recent submissions.
func (f *Fixture) DashboardStats(_ context.Context) (guarantor.DashboardStats, error) {
	stats := guarantor.DashboardStats{TotalSubmissions: len(f.records)}
	for _, r := range f.records {
		switch r.Status {
		case guarantor.StatusPendingVerification:
			stats.PendingVerification++
		case guarantor.StatusInReview:
			stats.InReview++
		case guarantor.StatusVerified:
			stats.Verified++
		case guarantor.StatusRejected:
			stats.Rejected++
		}
	}

	recent := filterRecords(f.records, guarantor.SearchFilters{
		SortBy:    "submission_timestamp",
		SortOrder: "desc",
	})
	if len(recent) > RecentSubmissionCount {
		recent = recent[:RecentSubmissionCount]
	}
	stats.RecentSubmissions = recent

	return stats, nil
}

// UploadAttachment simulates a transfer: progress ticks from 0 to 100 in
// steps of 10, then the attachment is returned.
func (f *Fixture) UploadAttachment(ctx context.Context, recordID string, file guarantor.FileInfo, category guarantor.AttachmentType, onProgress ProgressFunc) (guarantor.Attachment, error) {
	for pct := 0; pct <= 100; pct += 10 {
		if err := ctx.Err(); err != nil {
			return guarantor.Attachment{}, err
		}
		if onProgress != nil {
			onProgress(pct)
		}
		if f.progressTick > 0 && pct < 100 {
			time.Sleep(f.progressTick)
		}
	}

	att := guarantor.Attachment{
		ID:         uuid.New().String(),
		Filename:   file.Name,
		FileType:   file.ContentType,
		FileSize:   file.Size,
		UploadDate: f.now(),
		Type:       category,
		FileURL:    fmt.Sprintf("/api/files/%s", uuid.New().String()),
	}

	slog.Debug("fixture: uploaded attachment", "record_id", recordID, "filename", file.Name)
	return att, nil
}

// SendForVerification returns the confirmation message without mutating any
// local status.
func (f *Fixture) SendForVerification(ctx context.Context, id string) (string, error) {
	if _, err := f.GetRecord(ctx, id); err != nil {
		return "", err
	}
	return "Guarantor sent for background verification successfully", nil
}

// ExportRecords encodes the filtered record set. CSV columns are fixed:
// Name, Relationship, Address, Occupation, Employer, Status, Date. There is
// no local XLSX encoder, so xlsx requests fall back to CSV.
func (f *Fixture) ExportRecords(_ context.Context, filters guarantor.SearchFilters, format ExportFormat) ([]byte, error) {
	filtered := filterRecords(f.records, filters)

	if format == ExportJSON {
		return json.Marshal(filtered)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Name", "Relationship", "Address", "Occupation", "Employer", "Status", "Date"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range filtered {
		row := []string{
			r.Name,
			r.Relationship,
			r.Address.String(),
			r.Occupation,
			r.Employer,
			string(r.Status),
			r.SubmissionTimestamp.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
