package store

// remote.go implements the Client contract against the intake API. Responses
// are returned as-is; the only translation is mapping HTTP failures onto the
// shared error taxonomy (404 -> NotFoundError, everything else ->
// TransportError).

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lenderdesk/guarantor/internal/guarantor"
)

// Remote is the HTTP Client implementation.
type Remote struct {
	http *resty.Client
}

// NewRemote builds a remote backend for the given API base URL.
func NewRemote(baseURL string, timeout time.Duration, retries int) *Remote {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetHeader("Accept", "application/json")

	return &Remote{http: c}
}

func (r *Remote) CreateRecord(ctx context.Context, input guarantor.CreateInput) (guarantor.Record, error) {
	var rec guarantor.Record
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&rec).
		Post("/api/guarantors")
	if err := r.check("create guarantor", resp, err, ""); err != nil {
		return guarantor.Record{}, err
	}
	return rec, nil
}

func (r *Remote) GetRecord(ctx context.Context, id string) (guarantor.Record, error) {
	var rec guarantor.Record
	resp, err := r.http.R().
		SetContext(ctx).
		SetResult(&rec).
		Get("/api/guarantors/" + id)
	if err := r.check("get guarantor", resp, err, id); err != nil {
		return guarantor.Record{}, err
	}
	return rec, nil
}

func (r *Remote) UpdateRecord(ctx context.Context, id string, patch guarantor.UpdateInput) (guarantor.Record, error) {
	var rec guarantor.Record
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(patch).
		SetResult(&rec).
		Put("/api/guarantors/" + id)
	if err := r.check("update guarantor", resp, err, id); err != nil {
		return guarantor.Record{}, err
	}
	return rec, nil
}

func (r *Remote) DeleteRecord(ctx context.Context, id string) error {
	resp, err := r.http.R().
		SetContext(ctx).
		Delete("/api/guarantors/" + id)
	return r.check("delete guarantor", resp, err, id)
}

func (r *Remote) ListRecords(ctx context.Context, filters guarantor.SearchFilters) (guarantor.PaginatedRecords, error) {
	var page guarantor.PaginatedRecords
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(queryValues(filters)).
		SetResult(&page).
		Get("/api/guarantors")
	if err := r.check("list guarantors", resp, err, ""); err != nil {
		return guarantor.PaginatedRecords{}, err
	}
	return page, nil
}

func (r *Remote) DashboardStats(ctx context.Context) (guarantor.DashboardStats, error) {
	var stats guarantor.DashboardStats
	resp, err := r.http.R().
		SetContext(ctx).
		SetResult(&stats).
		Get("/api/dashboard/stats")
	if err := r.check("dashboard stats", resp, err, ""); err != nil {
		return guarantor.DashboardStats{}, err
	}
	return stats, nil
}

// UploadAttachment posts the file as multipart form data. Progress is derived
// from bytes consumed out of the file reader; the final 100 is guaranteed to
// fire before the call returns successfully.
func (r *Remote) UploadAttachment(ctx context.Context, recordID string, file guarantor.FileInfo, category guarantor.AttachmentType, onProgress ProgressFunc) (guarantor.Attachment, error) {
	pr := &progressReader{
		r:     bytes.NewReader(file.Content),
		total: file.Size,
		fn:    onProgress,
	}

	var att guarantor.Attachment
	resp, err := r.http.R().
		SetContext(ctx).
		SetFileReader("file", file.Name, pr).
		SetFormData(map[string]string{"attachment_type": string(category)}).
		SetResult(&att).
		Post(fmt.Sprintf("/api/guarantors/%s/attachments", recordID))
	if err := r.check("upload attachment", resp, err, recordID); err != nil {
		return guarantor.Attachment{}, err
	}

	if onProgress != nil && pr.last < 100 {
		onProgress(100)
	}
	return att, nil
}

func (r *Remote) SendForVerification(ctx context.Context, id string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	resp, err := r.http.R().
		SetContext(ctx).
		SetResult(&out).
		Post(fmt.Sprintf("/api/guarantors/%s/verify", id))
	if err := r.check("send for verification", resp, err, id); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (r *Remote) ExportRecords(ctx context.Context, filters guarantor.SearchFilters, format ExportFormat) ([]byte, error) {
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(queryValues(filters)).
		SetQueryParam("format", string(format)).
		Post("/api/guarantors/export")
	if err := r.check("export guarantors", resp, err, ""); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// check maps a resty response onto the shared error taxonomy.
func (r *Remote) check(op string, resp *resty.Response, err error, id string) error {
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if resp.StatusCode() == 404 {
		return &NotFoundError{Resource: "guarantor", ID: id}
	}
	if resp.IsError() {
		return &TransportError{Op: op, StatusCode: resp.StatusCode()}
	}
	return nil
}

// progressReader reports consumption of the wrapped reader as a percentage.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	last  int
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.fn != nil && p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct > p.last {
			p.last = pct
			p.fn(pct)
		}
	}
	return n, err
}
