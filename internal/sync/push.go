package sync

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kozsync/internal/logger"
	"kozsync/internal/models"
	"kozsync/internal/services/woocommerce"
)

// Mappings carries the per-run catalog caches. Categories is built once up
// front by batch pushes; Brand is built lazily on the first product that
// carries a brand and then reused for the rest of the run.
type Mappings struct {
	Categories *CategoryMapping
	Brand      *BrandMapping
}

type PushResult struct {
	ID       string `json:"id"`
	Barcode  string `json:"barcode"`
	Success  bool   `json:"success"`
	Action   string `json:"action,omitempty"` // created or updated
	RemoteID int64  `json:"remote_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

type BatchReport struct {
	Total   int          `json:"total"`
	Success int          `json:"success"`
	Failed  int          `json:"failed"`
	Details []PushResult `json:"details"`
}

// Pusher creates or updates staged rows on the remote store and records the
// outcome back onto the row.
type Pusher struct {
	catalog Catalog
	store   Store
	logger  *logger.Logger
}

func NewPusher(catalog Catalog, store Store, logger *logger.Logger) *Pusher {
	return &Pusher{
		catalog: catalog,
		store:   store,
		logger:  logger,
	}
}

// Push sends one staged row to the remote store. Every failure path marks the
// row failed and is reported as a result value; nothing propagates.
func (p *Pusher) Push(row *models.StagedProduct, maps *Mappings) PushResult {
	if maps == nil {
		maps = &Mappings{}
	}

	action, remoteID, err := p.push(row, maps)
	if err != nil {
		p.markFailed(row, err)
		return PushResult{ID: row.ID, Barcode: row.Barcode, Success: false, Error: err.Error()}
	}

	return PushResult{ID: row.ID, Barcode: row.Barcode, Success: true, Action: action, RemoteID: remoteID}
}

func (p *Pusher) push(row *models.StagedProduct, maps *Mappings) (string, int64, error) {
	payload, err := p.buildPayload(row, maps)
	if err != nil {
		return "", 0, err
	}

	existing, err := p.catalog.GetProductBySKU(row.Barcode)
	if err != nil {
		return "", 0, err
	}

	if existing != nil {
		if _, err := p.catalog.UpdateProduct(existing.ID, payload); err != nil {
			return "", 0, err
		}
		if err := p.markSynced(row, existing.ID); err != nil {
			return "", 0, err
		}
		return "updated", existing.ID, nil
	}

	created, err := p.catalog.CreateProduct(payload)
	if err != nil {
		return "", 0, err
	}
	if created == nil || created.ID == 0 {
		return "", 0, errors.New("ürün oluşturulamadı")
	}
	if err := p.markSynced(row, created.ID); err != nil {
		return "", 0, err
	}
	return "created", created.ID, nil
}

func (p *Pusher) buildPayload(row *models.StagedProduct, maps *Mappings) (*woocommerce.ProductPayload, error) {
	payload := &woocommerce.ProductPayload{
		Name:             row.Name,
		Type:             "simple",
		Status:           "publish",
		SKU:              row.Barcode,
		RegularPrice:     strconv.FormatFloat(row.Price, 'f', 2, 64),
		Description:      row.Description,
		ShortDescription: shortDescription(row),
	}

	if maps.Categories == nil {
		mapping, err := BuildCategoryMapping(p.catalog)
		if err != nil {
			return nil, err
		}
		maps.Categories = mapping
	}
	for _, id := range maps.Categories.ResolveIDs(row.MainCategory, row.SubCategory) {
		payload.Categories = append(payload.Categories, woocommerce.CategoryRef{ID: id})
	}

	if row.ImageURL != "" {
		payload.Images = []woocommerce.Image{{Src: row.ImageURL}}
	}

	if row.Brand != "" {
		if maps.Brand == nil {
			brand, err := BuildBrandMapping(p.catalog, p.logger)
			if err != nil {
				return nil, err
			}
			maps.Brand = brand
		}

		// Both meta keys for theme/plugin compatibility.
		payload.MetaData = []woocommerce.MetaData{
			{Key: "_brand", Value: row.Brand},
			{Key: "brand", Value: row.Brand},
		}
		payload.Attributes = []woocommerce.ProductAttribute{brandAttribute(row.Brand, maps.Brand)}
	}

	return payload, nil
}

// brandAttribute attaches the brand as a global attribute when the store has
// one, normalizing to the canonical term name when the brand resolves to an
// existing term. Stores without a brand attribute get a local attribute.
func brandAttribute(brand string, mapping *BrandMapping) woocommerce.ProductAttribute {
	attribute := woocommerce.ProductAttribute{
		Position:  0,
		Visible:   true,
		Variation: false,
		Options:   []string{brand},
	}

	if mapping.AttributeID == 0 {
		attribute.Name = "Marka"
		return attribute
	}

	attribute.ID = mapping.AttributeID
	if _, canonical, ok := mapping.ResolveTerm(brand); ok {
		attribute.Options = []string{canonical}
	}
	return attribute
}

func shortDescription(row *models.StagedProduct) string {
	parts := make([]string, 0, 2)
	if row.Brand != "" {
		parts = append(parts, row.Brand)
	}
	if row.MainCategory != "" {
		parts = append(parts, row.MainCategory)
	}
	return strings.Join(parts, " - ")
}

func (p *Pusher) markSynced(row *models.StagedProduct, remoteID int64) error {
	now := time.Now()
	row.RemoteProductID = &remoteID
	row.SyncStatus = models.SyncStatusSynced
	row.SyncError = nil
	row.SyncedAt = &now
	return p.store.Update(row)
}

func (p *Pusher) markFailed(row *models.StagedProduct, pushErr error) {
	message := pushErr.Error()
	row.SyncStatus = models.SyncStatusFailed
	row.SyncError = &message
	if err := p.store.Update(row); err != nil {
		p.logger.Error("Failed to record push failure for %s: %v", row.Barcode, err)
	}
}

// PushBatch pushes the given staged rows sequentially. The category mapping
// is built once before the loop; a missing row is a failure detail, not an
// abort.
func (p *Pusher) PushBatch(ids []string) (*BatchReport, error) {
	mapping, err := BuildCategoryMapping(p.catalog)
	if err != nil {
		return nil, err
	}
	maps := &Mappings{Categories: mapping}

	report := &BatchReport{
		Total:   len(ids),
		Details: make([]PushResult, 0, len(ids)),
	}

	for _, id := range ids {
		row, err := p.store.FindByID(id)
		if err != nil || row == nil {
			detail := PushResult{ID: id, Success: false, Error: "ürün bulunamadı"}
			if err != nil {
				detail.Error = fmt.Sprintf("ürün bulunamadı: %v", err)
			}
			report.Details = append(report.Details, detail)
			report.Failed++
			continue
		}

		result := p.Push(row, maps)
		report.Details = append(report.Details, result)
		if result.Success {
			report.Success++
		} else {
			report.Failed++
		}
	}

	return report, nil
}

// ResetSync returns a row to pending so the next push attempt runs again.
// The remote product id is kept; a re-push still resolves by SKU first.
func ResetSync(store Store, id string) (*models.StagedProduct, error) {
	row, err := store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.New("ürün bulunamadı")
	}

	row.SyncStatus = models.SyncStatusPending
	row.SyncError = nil
	row.SyncedAt = nil
	if err := store.Update(row); err != nil {
		return nil, err
	}
	return row, nil
}
