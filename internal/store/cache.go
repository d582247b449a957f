package store

// cache.go wraps a Client with a read-through cache so repeated list and
// dashboard queries do not hit the backend within their freshness window.
// Entries are keyed by (entity, identifier-or-filter-set), so distinct
// queries never collide; a stale in-flight result can only ever overwrite its
// own key.
//
// Invalidation rules:
//   - CreateRecord drops the list and stats caches and seeds the record entry
//   - UpdateRecord seeds the record entry and drops list and stats
//   - DeleteRecord drops the record entry, list, and stats
//   - SendForVerification and UploadAttachment drop the record entry (and,
//     for verification, list and stats) so the next read refetches
import (
	"context"
	"sync"
	"time"

	"github.com/lenderdesk/guarantor/internal/guarantor"
)

// Cache freshness windows.
const (
	RecordTTL = 5 * time.Minute
	ListTTL   = 2 * time.Minute
	StatsTTL  = time.Minute
)

type recordEntry struct {
	value   guarantor.Record
	expires time.Time
}

type listEntry struct {
	value   guarantor.PaginatedRecords
	expires time.Time
}

type statsEntry struct {
	value   guarantor.DashboardStats
	expires time.Time
}

// Cached decorates a Client with caching. It is safe for concurrent use.
type Cached struct {
	inner Client
	now   func() time.Time

	mu      sync.Mutex
	records map[string]recordEntry
	lists   map[string]listEntry
	stats   *statsEntry
}

// NewCached wraps inner with the default freshness windows.
func NewCached(inner Client) *Cached {
	return &Cached{
		inner:   inner,
		now:     time.Now,
		records: make(map[string]recordEntry),
		lists:   make(map[string]listEntry),
	}
}

func (c *Cached) CreateRecord(ctx context.Context, input guarantor.CreateInput) (guarantor.Record, error) {
	rec, err := c.inner.CreateRecord(ctx, input)
	if err != nil {
		return guarantor.Record{}, err
	}

	c.mu.Lock()
	c.lists = make(map[string]listEntry)
	c.stats = nil
	c.records[rec.ID] = recordEntry{value: rec, expires: c.now().Add(RecordTTL)}
	c.mu.Unlock()

	return rec, nil
}

func (c *Cached) GetRecord(ctx context.Context, id string) (guarantor.Record, error) {
	c.mu.Lock()
	if e, ok := c.records[id]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	rec, err := c.inner.GetRecord(ctx, id)
	if err != nil {
		return guarantor.Record{}, err
	}

	c.mu.Lock()
	c.records[id] = recordEntry{value: rec, expires: c.now().Add(RecordTTL)}
	c.mu.Unlock()

	return rec, nil
}

func (c *Cached) UpdateRecord(ctx context.Context, id string, patch guarantor.UpdateInput) (guarantor.Record, error) {
	rec, err := c.inner.UpdateRecord(ctx, id, patch)
	if err != nil {
		return guarantor.Record{}, err
	}

	c.mu.Lock()
	c.records[id] = recordEntry{value: rec, expires: c.now().Add(RecordTTL)}
	c.lists = make(map[string]listEntry)
	c.stats = nil
	c.mu.Unlock()

	return rec, nil
}

func (c *Cached) DeleteRecord(ctx context.Context, id string) error {
	if err := c.inner.DeleteRecord(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.records, id)
	c.lists = make(map[string]listEntry)
	c.stats = nil
	c.mu.Unlock()

	return nil
}

func (c *Cached) ListRecords(ctx context.Context, filters guarantor.SearchFilters) (guarantor.PaginatedRecords, error) {
	key := queryValues(filters).Encode()

	c.mu.Lock()
	if e, ok := c.lists[key]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	page, err := c.inner.ListRecords(ctx, filters)
	if err != nil {
		return guarantor.PaginatedRecords{}, err
	}

	c.mu.Lock()
	c.lists[key] = listEntry{value: page, expires: c.now().Add(ListTTL)}
	c.mu.Unlock()

	return page, nil
}

func (c *Cached) DashboardStats(ctx context.Context) (guarantor.DashboardStats, error) {
	c.mu.Lock()
	if c.stats != nil && c.now().Before(c.stats.expires) {
		stats := c.stats.value
		c.mu.Unlock()
		return stats, nil
	}
	c.mu.Unlock()

	stats, err := c.inner.DashboardStats(ctx)
	if err != nil {
		return guarantor.DashboardStats{}, err
	}

	c.mu.Lock()
	c.stats = &statsEntry{value: stats, expires: c.now().Add(StatsTTL)}
	c.mu.Unlock()

	return stats, nil
}

func (c *Cached) UploadAttachment(ctx context.Context, recordID string, file guarantor.FileInfo, category guarantor.AttachmentType, onProgress ProgressFunc) (guarantor.Attachment, error) {
	att, err := c.inner.UploadAttachment(ctx, recordID, file, category, onProgress)
	if err != nil {
		return guarantor.Attachment{}, err
	}

	c.mu.Lock()
	delete(c.records, recordID)
	c.mu.Unlock()

	return att, nil
}

func (c *Cached) SendForVerification(ctx context.Context, id string) (string, error) {
	msg, err := c.inner.SendForVerification(ctx, id)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	delete(c.records, id)
	c.lists = make(map[string]listEntry)
	c.stats = nil
	c.mu.Unlock()

	return msg, nil
}

// ExportRecords is never cached; exports always reflect the backend.
func (c *Cached) ExportRecords(ctx context.Context, filters guarantor.SearchFilters, format ExportFormat) ([]byte, error) {
	return c.inner.ExportRecords(ctx, filters, format)
}
