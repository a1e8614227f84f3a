package sync

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"kozsync/internal/logger"
	"kozsync/internal/models"
)

// ProductImporter upserts feed entries into the staging store by barcode.
type ProductImporter struct {
	store  Store
	runs   RunRecorder
	logger *logger.Logger
}

func NewProductImporter(store Store, runs RunRecorder, logger *logger.Logger) *ProductImporter {
	return &ProductImporter{
		store:  store,
		runs:   runs,
		logger: logger,
	}
}

type ProductImportOptions struct {
	DryRun bool
	// Offset and Limit select the contiguous feed slice processed by this
	// invocation; the caller drives batching. Limit zero means the rest of
	// the feed.
	Offset int
	Limit  int
	// OnProgress, when set, is called synchronously after each item with
	// the number of items processed so far and the batch size. It is for
	// reporting only and never affects control flow.
	OnProgress func(processed, total int, result ItemResult)
}

type ItemResult struct {
	Barcode string                `json:"barcode"`
	Name    string                `json:"name"`
	Status  string                `json:"status"` // created, updated, skipped, dry_run, error
	Reason  string                `json:"reason,omitempty"`
	Product *models.StagedProduct `json:"product,omitempty"`
}

type ImportError struct {
	Barcode string `json:"barcode"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type ProductImportReport struct {
	Total    int           `json:"total"`
	Created  int           `json:"created"`
	Updated  int           `json:"updated"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
	Products []ItemResult  `json:"products"`
}

// Import processes the [Offset, Offset+Limit) slice of the feed. Single-item
// failures are appended to the report and never abort the batch.
func (pi *ProductImporter) Import(feed *ProductFeed, opts ProductImportOptions) (*ProductImportReport, error) {
	startedAt := time.Now()

	batch := sliceFeed(feed.Products, opts.Offset, opts.Limit)
	report := &ProductImportReport{
		Total:    len(batch),
		Errors:   []ImportError{},
		Products: make([]ItemResult, 0, len(batch)),
	}

	for i, raw := range batch {
		result := pi.importOne(raw, opts.DryRun)

		switch result.Status {
		case "created":
			report.Created++
		case "updated":
			report.Updated++
		case "skipped":
			report.Skipped++
		case "error":
			report.Errors = append(report.Errors, ImportError{
				Barcode: result.Barcode,
				Name:    result.Name,
				Message: result.Reason,
			})
			pi.logger.Error("Failed to import product %s (%s): %s", result.Barcode, result.Name, result.Reason)
		}

		report.Products = append(report.Products, result)

		if opts.OnProgress != nil {
			opts.OnProgress(i+1, len(batch), result)
		}
	}

	pi.recordRun(report, opts.DryRun, startedAt)
	return report, nil
}

func (pi *ProductImporter) importOne(raw json.RawMessage, dryRun bool) ItemResult {
	var entry FeedProduct
	if err := json.Unmarshal(raw, &entry); err != nil {
		return ItemResult{Status: "error", Reason: fmt.Sprintf("unreadable feed entry: %v", err)}
	}

	entry.Barcode = strings.TrimSpace(entry.Barcode)
	entry.Name = strings.TrimSpace(entry.Name)

	// A row without its natural key is skipped, never stored.
	if entry.Barcode == "" || entry.Name == "" {
		return ItemResult{
			Barcode: entry.Barcode,
			Name:    entry.Name,
			Status:  "skipped",
			Reason:  "missing barcode or name",
		}
	}

	staged := stagedFromFeed(&entry, raw)

	if dryRun {
		return ItemResult{Barcode: entry.Barcode, Name: entry.Name, Status: "dry_run", Product: staged}
	}

	existing, err := pi.store.FindByBarcode(entry.Barcode)
	if err != nil {
		return ItemResult{Barcode: entry.Barcode, Name: entry.Name, Status: "error", Reason: err.Error()}
	}

	if existing == nil {
		if err := pi.store.Create(staged); err != nil {
			return ItemResult{Barcode: entry.Barcode, Name: entry.Name, Status: "error", Reason: err.Error()}
		}
		return ItemResult{Barcode: entry.Barcode, Name: entry.Name, Status: "created", Product: staged}
	}

	applyFeedUpdate(existing, staged)
	if err := pi.store.Update(existing); err != nil {
		return ItemResult{Barcode: entry.Barcode, Name: entry.Name, Status: "error", Reason: err.Error()}
	}
	return ItemResult{Barcode: entry.Barcode, Name: entry.Name, Status: "updated", Product: existing}
}

func stagedFromFeed(entry *FeedProduct, raw json.RawMessage) *models.StagedProduct {
	currency := entry.Currency
	if currency == "" {
		currency = "TRY"
	}

	return &models.StagedProduct{
		Barcode:      entry.Barcode,
		ExternalSKU:  entry.SKU,
		Name:         entry.Name,
		Brand:        entry.Brand,
		Price:        float64(entry.Price),
		Currency:     currency,
		MainCategory: entry.MainCategory,
		SubCategory:  entry.SubCategory,
		Description:  entry.Description,
		ImageURL:     entry.ImageURL,
		SourceURL:    entry.URL,
		Rating:       float64(entry.Rating),
		ReviewCount:  int(entry.ReviewCount),
		RawPayload:   string(raw),
		SyncStatus:   models.SyncStatusPending,
	}
}

// applyFeedUpdate refreshes descriptive fields on re-import. The barcode never
// changes, and a row that already synced keeps its status until an operator
// resets it.
func applyFeedUpdate(existing, fresh *models.StagedProduct) {
	existing.ExternalSKU = fresh.ExternalSKU
	existing.Name = fresh.Name
	existing.Brand = fresh.Brand
	existing.Price = fresh.Price
	existing.Currency = fresh.Currency
	existing.MainCategory = fresh.MainCategory
	existing.SubCategory = fresh.SubCategory
	existing.Description = fresh.Description
	existing.ImageURL = fresh.ImageURL
	existing.SourceURL = fresh.SourceURL
	existing.Rating = fresh.Rating
	existing.ReviewCount = fresh.ReviewCount
	existing.RawPayload = fresh.RawPayload

	if existing.SyncStatus != models.SyncStatusSynced {
		existing.SyncStatus = models.SyncStatusPending
	}
}

func sliceFeed(products []json.RawMessage, offset, limit int) []json.RawMessage {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(products) {
		return nil
	}
	end := len(products)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return products[offset:end]
}

func (pi *ProductImporter) recordRun(report *ProductImportReport, dryRun bool, startedAt time.Time) {
	if pi.runs == nil {
		return
	}

	errorLines := make([]string, 0, len(report.Errors))
	for _, e := range report.Errors {
		errorLines = append(errorLines, fmt.Sprintf("%s (%s): %s", e.Barcode, e.Name, e.Message))
	}

	finishedAt := time.Now()
	run := &models.ImportRun{
		Kind:       models.ImportKindProducts,
		DryRun:     dryRun,
		Total:      report.Total,
		Created:    report.Created,
		Updated:    report.Updated,
		Skipped:    report.Skipped,
		Failed:     len(report.Errors),
		Errors:     strings.Join(errorLines, "\n"),
		StartedAt:  startedAt,
		FinishedAt: &finishedAt,
	}
	if err := pi.runs.RecordRun(run); err != nil {
		pi.logger.Error("Failed to record product import run: %v", err)
	}
}
