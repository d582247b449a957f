// Package store is the single integration point for guarantor record and
// attachment operations. It exposes one Client contract with two
// implementations selected at composition time: an in-process Fixture backend
// serving deterministic seed data, and a Remote backend forwarding to the
// intake API. Callers are backend-agnostic; both paths share signatures and
// error semantics.
package store

import (
	"context"

	"github.com/lenderdesk/guarantor/internal/guarantor"
)

// ExportFormat selects the encoding for record exports.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
	ExportJSON ExportFormat = "json"
)

// ProgressFunc receives upload progress as a percentage. Values are
// monotonically increasing and end at 100 before the upload call returns.
type ProgressFunc func(percent int)

// Client defines the contract required by the wizard, upload coordinator, and
// list/dashboard views to reach guarantor data.
type Client interface {
	// CreateRecord stores a new guarantor record. The backend assigns the
	// identifier, submission timestamp, submitter identity, and the initial
	// pending_verification status.
	CreateRecord(ctx context.Context, input guarantor.CreateInput) (guarantor.Record, error)

	// GetRecord returns the record with the given id, or a NotFoundError.
	GetRecord(ctx context.Context, id string) (guarantor.Record, error)

	// UpdateRecord shallow-merges patch onto the existing record and returns
	// the result, or a NotFoundError when the record is absent.
	UpdateRecord(ctx context.Context, id string, patch guarantor.UpdateInput) (guarantor.Record, error)

	// DeleteRecord removes the record, or returns a NotFoundError.
	DeleteRecord(ctx context.Context, id string) error

	// ListRecords applies filters in the fixed order search, status, dateFrom,
	// dateTo, sort, paginate and returns the resulting page.
	ListRecords(ctx context.Context, filters guarantor.SearchFilters) (guarantor.PaginatedRecords, error)

	// DashboardStats returns aggregate counts by status plus the most
	// recently submitted records.
	DashboardStats(ctx context.Context) (guarantor.DashboardStats, error)

	// UploadAttachment transfers one file for the given record and returns
	// the resulting attachment. No validation happens here; callers are
	// expected to run validation.ValidateFile first.
	UploadAttachment(ctx context.Context, recordID string, file guarantor.FileInfo, category guarantor.AttachmentType, onProgress ProgressFunc) (guarantor.Attachment, error)

	// SendForVerification hands the record to the external verification
	// workflow and returns a confirmation message. The local status is never
	// mutated by this call.
	SendForVerification(ctx context.Context, id string) (string, error)

	// ExportRecords encodes the filtered (unpaginated) record set in the
	// requested format and returns the raw bytes.
	ExportRecords(ctx context.Context, filters guarantor.SearchFilters, format ExportFormat) ([]byte, error)
}
