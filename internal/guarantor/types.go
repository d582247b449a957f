// Package guarantor defines the domain types shared across the intake core:
// guarantor records, attachments, search filters, and the wire shapes used by
// both the fixture and remote backends.
package guarantor

import (
	"fmt"
	"time"
)

// Status is the verification state of a guarantor record. Status only moves
// forward through an external verification action; this client never promotes
// a status locally except initializing new records to pending_verification.
type Status string

const (
	StatusPendingVerification Status = "pending_verification"
	StatusInReview            Status = "in_review"
	StatusVerified            Status = "verified"
	StatusRejected            Status = "rejected"
	StatusDraft               Status = "draft"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPendingVerification, StatusInReview, StatusVerified, StatusRejected, StatusDraft:
		return true
	}
	return false
}

// Address is a guarantor's postal address. All fields are required.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// String renders the address the way exports and review screens show it.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.Zip)
}

// AttachmentType categorizes an uploaded supporting document.
type AttachmentType string

const (
	AttachmentIdentification      AttachmentType = "identification"
	AttachmentProofOfAddress      AttachmentType = "proof_of_address"
	AttachmentBusinessCertificate AttachmentType = "business_certificate"
	AttachmentOther               AttachmentType = "other"
)

// Attachment is one uploaded supporting document. Attachments are created only
// as the terminal success state of an upload and are never mutated afterwards.
type Attachment struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	FileType   string         `json:"file_type"`
	FileSize   int64          `json:"file_size"`
	UploadDate time.Time      `json:"upload_date"`
	Type       AttachmentType `json:"attachment_type"`
	FileURL    string         `json:"file_url"`
}

// Record is one submitted guarantor dossier.
type Record struct {
	ID                  string       `json:"id"`
	Name                string       `json:"guarantor_name"`
	Relationship        string       `json:"relationship_to_borrower"`
	Address             Address      `json:"address"`
	DateOfBirth         string       `json:"date_of_birth"`
	Occupation          string       `json:"occupation"`
	Employer            string       `json:"employer_or_business"`
	LinkedIn            string       `json:"linkedin_profile"`
	RegistrationNumber  string       `json:"company_registration_number"`
	Associations        []string     `json:"known_associations"`
	Comments            string       `json:"comments"`
	SubmissionTimestamp time.Time    `json:"submission_timestamp"`
	SubmittedBy         string       `json:"submitted_by"`
	Status              Status       `json:"record_status"`
	Attachments         []Attachment `json:"attachments,omitempty"`
}

// CreateInput is the payload for creating a new guarantor record. Optional
// fields left empty are defaulted by the backend (empty string / empty list).
type CreateInput struct {
	Name               string   `json:"guarantor_name"`
	Relationship       string   `json:"relationship_to_borrower"`
	Address            Address  `json:"address"`
	DateOfBirth        string   `json:"date_of_birth"`
	Occupation         string   `json:"occupation"`
	Employer           string   `json:"employer_or_business"`
	LinkedIn           string   `json:"linkedin_profile,omitempty"`
	RegistrationNumber string   `json:"company_registration_number,omitempty"`
	Associations       []string `json:"known_associations,omitempty"`
	Comments           string   `json:"comments,omitempty"`
}

// UpdateInput is a partial patch for an existing record. Nil fields are left
// unchanged by the backend.
type UpdateInput struct {
	Name               *string   `json:"guarantor_name,omitempty"`
	Relationship       *string   `json:"relationship_to_borrower,omitempty"`
	Address            *Address  `json:"address,omitempty"`
	DateOfBirth        *string   `json:"date_of_birth,omitempty"`
	Occupation         *string   `json:"occupation,omitempty"`
	Employer           *string   `json:"employer_or_business,omitempty"`
	LinkedIn           *string   `json:"linkedin_profile,omitempty"`
	RegistrationNumber *string   `json:"company_registration_number,omitempty"`
	Associations       *[]string `json:"known_associations,omitempty"`
	Comments           *string   `json:"comments,omitempty"`
	Status             *Status   `json:"record_status,omitempty"`
}

// SearchFilters narrows, orders, and pages a record listing. Zero values mean
// "not specified" and are ignored by both backends.
type SearchFilters struct {
	Search      string
	Status      []Status
	DateFrom    time.Time
	DateTo      time.Time
	SubmittedBy string
	Page        int
	Limit       int
	SortBy      string
	SortOrder   string // "asc" (default) or "desc"
}

// PaginatedRecords is the envelope returned by record listings. TotalPages and
// TotalResults are computed from the post-filter, pre-pagination count.
type PaginatedRecords struct {
	Results      []Record `json:"results"`
	Page         int      `json:"page"`
	Limit        int      `json:"limit"`
	TotalPages   int      `json:"totalPages"`
	TotalResults int      `json:"totalResults"`
}

// DashboardStats aggregates record counts by status plus the most recently
// submitted records.
type DashboardStats struct {
	TotalSubmissions    int      `json:"total_submissions"`
	PendingVerification int      `json:"pending_verification"`
	InReview            int      `json:"in_review"`
	Verified            int      `json:"verified"`
	Rejected            int      `json:"rejected"`
	RecentSubmissions   []Record `json:"recent_submissions"`
}

// FileInfo is an opaque reference to a file selected for upload. Name, Size,
// and ContentType identify the file; Content is carried as an opaque blob and
// plays no part in identity.
type FileInfo struct {
	Name        string
	Size        int64
	ContentType string
	Content     []byte
}

// Key returns the reference identity used to deduplicate uploads of the same
// selected file.
func (f FileInfo) Key() string {
	return fmt.Sprintf("%s|%d|%s", f.Name, f.Size, f.ContentType)
}

// FormData is the in-progress wizard form: a create payload plus the draft
// bookkeeping persisted alongside it.
type FormData struct {
	CreateInput
	Step    int  `json:"step,omitempty"`
	IsDraft bool `json:"isDraft,omitempty"`
}
