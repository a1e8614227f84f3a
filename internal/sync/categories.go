package sync

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"kozsync/internal/logger"
	"kozsync/internal/models"
	"kozsync/internal/services/woocommerce"
)

// CategoryImporter creates the two-level category tree from a category feed,
// skipping categories that already exist remotely.
type CategoryImporter struct {
	catalog Catalog
	runs    RunRecorder
	logger  *logger.Logger
}

func NewCategoryImporter(catalog Catalog, runs RunRecorder, logger *logger.Logger) *CategoryImporter {
	return &CategoryImporter{
		catalog: catalog,
		runs:    runs,
		logger:  logger,
	}
}

type CategoryImportOptions struct {
	// DryRun simulates creation with deterministic pseudo-ids and never
	// calls the remote API for writes.
	DryRun bool
	// Limit truncates the number of main categories processed; zero means
	// no limit. Sub-categories of a processed main are never truncated.
	Limit int
}

type CategoryImportReport struct {
	TotalMain   int              `json:"total_main"`
	TotalSub    int              `json:"total_sub"`
	CreatedMain int              `json:"created_main"`
	CreatedSub  int              `json:"created_sub"`
	Errors      []string         `json:"errors"`
	Mapping     map[string]int64 `json:"mapping"`
}

// Import resolves or creates every category in the feed. A failing create is
// recorded and the run continues; only a failing enumeration of the existing
// remote categories aborts the whole run.
func (ci *CategoryImporter) Import(feed CategoryFeed, opts CategoryImportOptions) (*CategoryImportReport, error) {
	startedAt := time.Now()

	mapping, err := BuildCategoryMapping(ci.catalog)
	if err != nil {
		return nil, err
	}

	report := &CategoryImportReport{
		Errors:  []string{},
		Mapping: make(map[string]int64),
	}

	// Deterministic order so Limit truncates the same categories every run.
	mainNames := make([]string, 0, len(feed))
	for name := range feed {
		mainNames = append(mainNames, name)
	}
	sort.Strings(mainNames)

	for _, mainName := range mainNames {
		if opts.Limit > 0 && report.TotalMain >= opts.Limit {
			break
		}
		report.TotalMain++

		mainID, created, err := ci.resolveOrCreate(mapping, 0, mainName, opts.DryRun)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("ana kategori %q: %v", mainName, err))
			ci.logger.Error("Failed to create category %q: %v", mainName, err)
			continue
		}
		if created {
			report.CreatedMain++
		}
		report.Mapping[mainName] = mainID

		for _, sub := range feed[mainName] {
			report.TotalSub++

			subID, created, err := ci.resolveOrCreate(mapping, mainID, sub.Name, opts.DryRun)
			if err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("alt kategori %q > %q: %v", mainName, sub.Name, err))
				ci.logger.Error("Failed to create sub-category %q under %q: %v", sub.Name, mainName, err)
				continue
			}
			if created {
				report.CreatedSub++
			}
			report.Mapping[fmt.Sprintf("%s > %s", mainName, sub.Name)] = subID
		}
	}

	ci.recordRun(report, opts.DryRun, startedAt)
	return report, nil
}

// resolveOrCreate returns the remote id for a category, creating it when the
// mapping has no match. Top-level categories additionally accept a substring
// match to absorb naming drift; sub-categories match exactly.
func (ci *CategoryImporter) resolveOrCreate(mapping *CategoryMapping, parent int64, name string, dryRun bool) (int64, bool, error) {
	slug := Slugify(name)

	if id, ok := mapping.Lookup(parent, slug); ok {
		return id, false, nil
	}
	if parent == 0 {
		if id, ok := mapping.LookupTopLevelFuzzy(slug); ok {
			return id, false, nil
		}
	}

	var id int64
	if dryRun {
		id = pseudoID(parent, slug)
	} else {
		category, err := ci.catalog.CreateCategory(woocommerce.CategoryPayload{
			Name:   strings.TrimSpace(name),
			Slug:   slug,
			Parent: parent,
		})
		if err != nil {
			return 0, false, err
		}
		id = category.ID
	}

	mapping.Add(parent, slug, name, id)
	return id, true, nil
}

// pseudoID is the stable stand-in id used by dry runs.
func pseudoID(parent int64, slug string) int64 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d:%s", parent, slug)
	return int64(h.Sum32())
}

func (ci *CategoryImporter) recordRun(report *CategoryImportReport, dryRun bool, startedAt time.Time) {
	if ci.runs == nil {
		return
	}

	finishedAt := time.Now()
	run := &models.ImportRun{
		Kind:       models.ImportKindCategories,
		DryRun:     dryRun,
		Total:      report.TotalMain + report.TotalSub,
		Created:    report.CreatedMain + report.CreatedSub,
		Failed:     len(report.Errors),
		Errors:     strings.Join(report.Errors, "\n"),
		StartedAt:  startedAt,
		FinishedAt: &finishedAt,
	}
	if err := ci.runs.RecordRun(run); err != nil {
		ci.logger.Error("Failed to record category import run: %v", err)
	}
}
