package store

// query.go implements client-side filter/sort/paginate emulation for the
// fixture backend, plus the query-string encoding shared by the remote
// backend and the cache key builder.

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lenderdesk/guarantor/internal/guarantor"
)

// DefaultPageLimit is the page size when filters leave Limit unset.
const DefaultPageLimit = 10

// filterRecords applies the non-paginating filter stages in their fixed
// order: search, status, dateFrom, dateTo, sort. Unrecognized or empty filter
// values are ignored rather than rejected.
func filterRecords(records []guarantor.Record, f guarantor.SearchFilters) []guarantor.Record {
	out := make([]guarantor.Record, 0, len(records))
	out = append(out, records...)

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		out = keep(out, func(r guarantor.Record) bool {
			return strings.Contains(strings.ToLower(r.Name), needle) ||
				strings.Contains(strings.ToLower(r.Relationship), needle) ||
				strings.Contains(strings.ToLower(r.Occupation), needle) ||
				strings.Contains(strings.ToLower(r.Employer), needle)
		})
	}

	if len(f.Status) > 0 {
		wanted := make(map[guarantor.Status]bool, len(f.Status))
		for _, s := range f.Status {
			wanted[s] = true
		}
		out = keep(out, func(r guarantor.Record) bool { return wanted[r.Status] })
	}

	if !f.DateFrom.IsZero() {
		out = keep(out, func(r guarantor.Record) bool { return !r.SubmissionTimestamp.Before(f.DateFrom) })
	}
	if !f.DateTo.IsZero() {
		out = keep(out, func(r guarantor.Record) bool { return !r.SubmissionTimestamp.After(f.DateTo) })
	}

	if f.SortBy != "" {
		sortRecords(out, f.SortBy, f.SortOrder)
	}

	return out
}

// paginate slices records into the requested page and wraps the result in the
// pagination envelope. Totals reflect the pre-pagination count.
func paginate(records []guarantor.Record, f guarantor.SearchFilters) guarantor.PaginatedRecords {
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}

	total := len(records)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return guarantor.PaginatedRecords{
		Results:      records[start:end],
		Page:         page,
		Limit:        limit,
		TotalPages:   (total + limit - 1) / limit,
		TotalResults: total,
	}
}

func keep(records []guarantor.Record, pred func(guarantor.Record) bool) []guarantor.Record {
	out := records[:0]
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// sortRecords stable-sorts by the named field, ascending unless order is
// "desc". Unknown field names leave the slice untouched.
func sortRecords(records []guarantor.Record, field, order string) {
	less := lessFunc(field)
	if less == nil {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		if order == "desc" {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

func lessFunc(field string) func(a, b guarantor.Record) bool {
	switch field {
	case "guarantor_name":
		return func(a, b guarantor.Record) bool { return a.Name < b.Name }
	case "relationship_to_borrower":
		return func(a, b guarantor.Record) bool { return a.Relationship < b.Relationship }
	case "occupation":
		return func(a, b guarantor.Record) bool { return a.Occupation < b.Occupation }
	case "employer_or_business":
		return func(a, b guarantor.Record) bool { return a.Employer < b.Employer }
	case "record_status":
		return func(a, b guarantor.Record) bool { return a.Status < b.Status }
	case "submitted_by":
		return func(a, b guarantor.Record) bool { return a.SubmittedBy < b.SubmittedBy }
	case "date_of_birth":
		return func(a, b guarantor.Record) bool { return a.DateOfBirth < b.DateOfBirth }
	case "submission_timestamp":
		return func(a, b guarantor.Record) bool { return a.SubmissionTimestamp.Before(b.SubmissionTimestamp) }
	case "id":
		return func(a, b guarantor.Record) bool { return a.ID < b.ID }
	default:
		return nil
	}
}

// queryValues encodes filters as the API query string. Absent, zero, and
// empty values are omitted; each status is repeated as its own parameter.
func queryValues(f guarantor.SearchFilters) url.Values {
	v := url.Values{}

	if f.Search != "" {
		v.Set("search", f.Search)
	}
	for _, s := range f.Status {
		v.Add("status", string(s))
	}
	if !f.DateFrom.IsZero() {
		v.Set("dateFrom", f.DateFrom.Format(time.RFC3339))
	}
	if !f.DateTo.IsZero() {
		v.Set("dateTo", f.DateTo.Format(time.RFC3339))
	}
	if f.SubmittedBy != "" {
		v.Set("submittedBy", f.SubmittedBy)
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.SortBy != "" {
		v.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		v.Set("sortOrder", f.SortOrder)
	}

	return v
}
