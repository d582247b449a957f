// Command guarantorctl exercises the guarantor intake core from the terminal:
// listing and inspecting records, dashboard stats, exports, attachment
// uploads, and submitting a prepared intake form. The backend (fixture or
// remote) is chosen by configuration, not flags.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/lenderdesk/guarantor/internal/config"
	"github.com/lenderdesk/guarantor/internal/draft"
	"github.com/lenderdesk/guarantor/internal/guarantor"
	"github.com/lenderdesk/guarantor/internal/logging"
	"github.com/lenderdesk/guarantor/internal/store"
	"github.com/lenderdesk/guarantor/internal/upload"
	"github.com/lenderdesk/guarantor/internal/wizard"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	client := store.New(cfg)
	ctx := context.Background()

	var cmdErr error
	switch os.Args[1] {
	case "list":
		cmdErr = runList(ctx, client, os.Args[2:])
	case "get":
		cmdErr = runGet(ctx, client, os.Args[2:])
	case "stats":
		cmdErr = runStats(ctx, client)
	case "verify":
		cmdErr = runVerify(ctx, client, os.Args[2:])
	case "export":
		cmdErr = runExport(ctx, client, os.Args[2:])
	case "upload":
		cmdErr = runUpload(ctx, client, cfg, os.Args[2:])
	case "submit":
		cmdErr = runSubmit(ctx, client, cfg, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if cmdErr != nil {
		msg := store.MapError(cmdErr)
		fmt.Fprintf(os.Stderr, "error: %s %s [%s]\n", msg.Message, msg.Action, msg.Code)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: guarantorctl <command> [flags]

commands:
  list      list guarantor records (supports -search, -status, -page, -limit, -sort, -order)
  get       show one record by id
  stats     show dashboard statistics
  verify    send a record for background verification
  export    export filtered records (-format csv|xlsx|json, -out file)
  upload    upload an attachment (-record id, -category type, -file path)
  submit    submit a prepared intake form (-form file.json)`)
}

func runList(ctx context.Context, client store.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	search := fs.String("search", "", "substring to match against name, relationship, occupation, employer")
	status := fs.String("status", "", "comma-separated status filter")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	sortBy := fs.String("sort", "", "field to sort by")
	order := fs.String("order", "asc", "sort order: asc or desc")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filters := guarantor.SearchFilters{
		Search:    *search,
		Page:      *page,
		Limit:     *limit,
		SortBy:    *sortBy,
		SortOrder: *order,
	}
	for _, s := range strings.Split(*status, ",") {
		if s = strings.TrimSpace(s); s != "" {
			filters.Status = append(filters.Status, guarantor.Status(s))
		}
	}

	result, err := client.ListRecords(ctx, filters)
	if err != nil {
		return err
	}

	for _, r := range result.Results {
		fmt.Printf("%-12s %-25s %-22s %s\n", r.ID, r.Name, r.Status, r.SubmissionTimestamp.Format(time.RFC3339))
	}
	fmt.Printf("page %d/%d, %d record(s) total\n", result.Page, result.TotalPages, result.TotalResults)
	return nil
}

func runGet(ctx context.Context, client store.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: guarantorctl get <id>")
	}

	rec, err := client.GetRecord(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(rec)
}

func runStats(ctx context.Context, client store.Client) error {
	stats, err := client.DashboardStats(ctx)
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func runVerify(ctx context.Context, client store.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: guarantorctl verify <id>")
	}

	msg, err := client.SendForVerification(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func runExport(ctx context.Context, client store.Client, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "csv", "export format: csv, xlsx, or json")
	out := fs.String("out", "", "output file (default: guarantors.<format>)")
	search := fs.String("search", "", "substring filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := client.ExportRecords(ctx, guarantor.SearchFilters{Search: *search}, store.ExportFormat(*format))
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = "guarantors." + *format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(data), path)
	return nil
}

func runUpload(ctx context.Context, client store.Client, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	recordID := fs.String("record", "", "record id the attachment belongs to")
	category := fs.String("category", string(guarantor.AttachmentOther), "attachment category")
	path := fs.String("file", "", "file to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *recordID == "" || *path == "" {
		return fmt.Errorf("usage: guarantorctl upload -record <id> -file <path> [-category <type>]")
	}

	content, err := os.ReadFile(*path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	file := guarantor.FileInfo{
		Name:        filepath.Base(*path),
		Size:        int64(len(content)),
		ContentType: mime.TypeByExtension(filepath.Ext(*path)),
		Content:     content,
	}

	mgr := upload.NewManager(client, *recordID,
		upload.WithMaxConcurrent(cfg.Upload.MaxConcurrent),
		upload.OnComplete(func(att guarantor.Attachment) {
			fmt.Printf("uploaded %s -> %s\n", att.Filename, att.FileURL)
		}),
		upload.OnError(func(msg string) {
			fmt.Fprintln(os.Stderr, msg)
		}),
	)

	if err := mgr.Enqueue(ctx, file, guarantor.AttachmentType(*category)); err != nil {
		return err
	}
	for mgr.IsUploading() {
		time.Sleep(50 * time.Millisecond)
	}
	if mgr.HasErrors() {
		return fmt.Errorf("upload failed")
	}
	return nil
}

func runSubmit(ctx context.Context, client store.Client, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	formPath := fs.String("form", "", "JSON file holding the intake form")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *formPath == "" {
		return fmt.Errorf("usage: guarantorctl submit -form <file.json>")
	}

	data, err := os.ReadFile(*formPath)
	if err != nil {
		return fmt.Errorf("read form: %w", err)
	}
	var form guarantor.FormData
	if err := json.Unmarshal(data, &form); err != nil {
		return fmt.Errorf("decode form: %w", err)
	}

	drafts := draft.NewFileStore(cfg.Draft.Path)
	w, err := wizard.New(client, drafts, consoleNotifier{}, cfg.Draft.AutosaveDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	w.UpdateForm(func(f *guarantor.FormData) { *f = form })

	rec, err := w.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("submitted record %s (status %s)\n", rec.ID, rec.Status)
	return nil
}

// consoleNotifier is the toast surface stand-in for terminal use.
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { fmt.Println(msg) }
func (consoleNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, msg) }

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
