package store

import (
	"context"
	"testing"
	"time"

	"github.com/lenderdesk/guarantor/internal/guarantor"
)

// countingClient records how many times each operation reached the backend.
type countingClient struct {
	gets    int
	lists   int
	stats   int
	creates int
	exports int

	record guarantor.Record
}

func (s *countingClient) CreateRecord(_ context.Context, input guarantor.CreateInput) (guarantor.Record, error) {
	s.creates++
	return guarantor.Record{ID: "new-1", Name: input.Name}, nil
}

func (s *countingClient) GetRecord(_ context.Context, id string) (guarantor.Record, error) {
	s.gets++
	rec := s.record
	rec.ID = id
	return rec, nil
}

func (s *countingClient) UpdateRecord(_ context.Context, id string, patch guarantor.UpdateInput) (guarantor.Record, error) {
	rec := guarantor.Record{ID: id}
	if patch.Name != nil {
		rec.Name = *patch.Name
	}
	return rec, nil
}

func (s *countingClient) DeleteRecord(context.Context, string) error { return nil }

func (s *countingClient) ListRecords(_ context.Context, f guarantor.SearchFilters) (guarantor.PaginatedRecords, error) {
	s.lists++
	return guarantor.PaginatedRecords{Page: 1, TotalResults: s.lists}, nil
}

func (s *countingClient) DashboardStats(context.Context) (guarantor.DashboardStats, error) {
	s.stats++
	return guarantor.DashboardStats{TotalSubmissions: s.stats}, nil
}

func (s *countingClient) UploadAttachment(_ context.Context, _ string, file guarantor.FileInfo, category guarantor.AttachmentType, _ ProgressFunc) (guarantor.Attachment, error) {
	return guarantor.Attachment{Filename: file.Name, Type: category}, nil
}

func (s *countingClient) SendForVerification(context.Context, string) (string, error) {
	return "ok", nil
}

func (s *countingClient) ExportRecords(context.Context, guarantor.SearchFilters, ExportFormat) ([]byte, error) {
	s.exports++
	return []byte("export"), nil
}

func newTestCache(inner Client, now *time.Time) *Cached {
	c := NewCached(inner)
	c.now = func() time.Time { return *now }
	return c
}

func TestCached_GetRecord_CachesWithinTTL(t *testing.T) {
	inner := &countingClient{}
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	c := newTestCache(inner, &now)
	ctx := context.Background()

	if _, err := c.GetRecord(ctx, "1"); err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if _, err := c.GetRecord(ctx, "1"); err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if inner.gets != 1 {
		t.Errorf("backend gets = %d, want 1 (second read served from cache)", inner.gets)
	}

	// Distinct ids never collide.
	if _, err := c.GetRecord(ctx, "2"); err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if inner.gets != 2 {
		t.Errorf("backend gets = %d, want 2 after a different id", inner.gets)
	}

	// Past the freshness window the backend is consulted again.
	now = now.Add(RecordTTL + time.Second)
	if _, err := c.GetRecord(ctx, "1"); err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if inner.gets != 3 {
		t.Errorf("backend gets = %d, want 3 after TTL expiry", inner.gets)
	}
}

func TestCached_ListRecords_KeyedByFilters(t *testing.T) {
	inner := &countingClient{}
	now := time.Now()
	c := newTestCache(inner, &now)
	ctx := context.Background()

	a := guarantor.SearchFilters{Search: "davis"}
	b := guarantor.SearchFilters{Search: "davis", Page: 2}

	c.ListRecords(ctx, a)
	c.ListRecords(ctx, a)
	if inner.lists != 1 {
		t.Errorf("backend lists = %d, want 1 for identical filters", inner.lists)
	}

	c.ListRecords(ctx, b)
	if inner.lists != 2 {
		t.Errorf("backend lists = %d, want 2 for different filters", inner.lists)
	}

	now = now.Add(ListTTL + time.Second)
	c.ListRecords(ctx, a)
	if inner.lists != 3 {
		t.Errorf("backend lists = %d, want 3 after TTL expiry", inner.lists)
	}
}

func TestCached_DashboardStats_TTL(t *testing.T) {
	inner := &countingClient{}
	now := time.Now()
	c := newTestCache(inner, &now)
	ctx := context.Background()

	c.DashboardStats(ctx)
	c.DashboardStats(ctx)
	if inner.stats != 1 {
		t.Errorf("backend stats = %d, want 1", inner.stats)
	}

	now = now.Add(StatsTTL + time.Second)
	c.DashboardStats(ctx)
	if inner.stats != 2 {
		t.Errorf("backend stats = %d, want 2 after TTL expiry", inner.stats)
	}
}

func TestCached_CreateInvalidatesListsAndStats(t *testing.T) {
	inner := &countingClient{}
	now := time.Now()
	c := newTestCache(inner, &now)
	ctx := context.Background()

	c.ListRecords(ctx, guarantor.SearchFilters{})
	c.DashboardStats(ctx)

	rec, err := c.CreateRecord(ctx, guarantor.CreateInput{Name: "Jane"})
	if err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}

	c.ListRecords(ctx, guarantor.SearchFilters{})
	c.DashboardStats(ctx)
	if inner.lists != 2 || inner.stats != 2 {
		t.Errorf("lists/stats = %d/%d, want 2/2 after create invalidation", inner.lists, inner.stats)
	}

	// The created record was seeded into the cache.
	got, err := c.GetRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if inner.gets != 0 {
		t.Errorf("backend gets = %d, want 0 (created record seeded)", inner.gets)
	}
	if got.Name != "Jane" {
		t.Errorf("cached record name = %q, want Jane", got.Name)
	}
}

func TestCached_UpdateSeedsRecordAndInvalidates(t *testing.T) {
	inner := &countingClient{}
	now := time.Now()
	c := newTestCache(inner, &now)
	ctx := context.Background()

	c.ListRecords(ctx, guarantor.SearchFilters{})
	c.DashboardStats(ctx)

	name := "Renamed"
	if _, err := c.UpdateRecord(ctx, "7", guarantor.UpdateInput{Name: &name}); err != nil {
		t.Fatalf("UpdateRecord() error = %v", err)
	}

	got, err := c.GetRecord(ctx, "7")
	if err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if inner.gets != 0 || got.Name != "Renamed" {
		t.Errorf("gets = %d, name = %q; want seeded updated record", inner.gets, got.Name)
	}

	c.ListRecords(ctx, guarantor.SearchFilters{})
	c.DashboardStats(ctx)
	if inner.lists != 2 || inner.stats != 2 {
		t.Errorf("lists/stats = %d/%d, want 2/2 after update invalidation", inner.lists, inner.stats)
	}
}

func TestCached_DeleteDropsEverything(t *testing.T) {
	inner := &countingClient{}
	now := time.Now()
	c := newTestCache(inner, &now)
	ctx := context.Background()

	c.GetRecord(ctx, "1")
	c.ListRecords(ctx, guarantor.SearchFilters{})
	c.DashboardStats(ctx)

	if err := c.DeleteRecord(ctx, "1"); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}

	c.GetRecord(ctx, "1")
	c.ListRecords(ctx, guarantor.SearchFilters{})
	c.DashboardStats(ctx)
	if inner.gets != 2 || inner.lists != 2 || inner.stats != 2 {
		t.Errorf("gets/lists/stats = %d/%d/%d, want 2/2/2 after delete", inner.gets, inner.lists, inner.stats)
	}
}

func TestCached_VerificationDropsRecordListsStats(t *testing.T) {
	inner := &countingClient{}
	now := time.Now()
	c := newTestCache(inner, &now)
	ctx := context.Background()

	c.GetRecord(ctx, "3")
	c.ListRecords(ctx, guarantor.SearchFilters{})
	c.DashboardStats(ctx)

	if _, err := c.SendForVerification(ctx, "3"); err != nil {
		t.Fatalf("SendForVerification() error = %v", err)
	}

	c.GetRecord(ctx, "3")
	c.ListRecords(ctx, guarantor.SearchFilters{})
	c.DashboardStats(ctx)
	if inner.gets != 2 || inner.lists != 2 || inner.stats != 2 {
		t.Errorf("gets/lists/stats = %d/%d/%d, want 2/2/2 after verification", inner.gets, inner.lists, inner.stats)
	}
}

func TestCached_UploadDropsOnlyThatRecord(t *testing.T) {
	inner := &countingClient{}
	now := time.Now()
	c := newTestCache(inner, &now)
	ctx := context.Background()

	c.GetRecord(ctx, "1")
	c.GetRecord(ctx, "2")
	c.ListRecords(ctx, guarantor.SearchFilters{})

	_, err := c.UploadAttachment(ctx, "1", guarantor.FileInfo{Name: "a.pdf"}, guarantor.AttachmentOther, nil)
	if err != nil {
		t.Fatalf("UploadAttachment() error = %v", err)
	}

	c.GetRecord(ctx, "1") // refetched
	c.GetRecord(ctx, "2") // still cached
	c.ListRecords(ctx, guarantor.SearchFilters{})
	if inner.gets != 3 {
		t.Errorf("backend gets = %d, want 3 (only record 1 dropped)", inner.gets)
	}
	if inner.lists != 1 {
		t.Errorf("backend lists = %d, want 1 (lists untouched by upload)", inner.lists)
	}
}

func TestCached_ExportNeverCached(t *testing.T) {
	inner := &countingClient{}
	now := time.Now()
	c := newTestCache(inner, &now)

	for i := 0; i < 3; i++ {
		if _, err := c.ExportRecords(context.Background(), guarantor.SearchFilters{}, ExportCSV); err != nil {
			t.Fatalf("ExportRecords() error = %v", err)
		}
	}
	if inner.exports != 3 {
		t.Errorf("backend exports = %d, want 3 (exports bypass the cache)", inner.exports)
	}
}
