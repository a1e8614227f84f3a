package sync

import (
	"kozsync/internal/models"
	"kozsync/internal/services/woocommerce"
)

// Catalog is the slice of the WooCommerce REST API the pipeline consumes.
// *woocommerce.Client satisfies it; tests inject fakes.
type Catalog interface {
	GetCategories(page, perPage int) ([]woocommerce.Category, error)
	CreateCategory(payload woocommerce.CategoryPayload) (*woocommerce.Category, error)
	GetAttributes() ([]woocommerce.Attribute, error)
	GetAttributeTerms(attributeID int64, page, perPage int) ([]woocommerce.AttributeTerm, error)
	GetProductBySKU(sku string) (*woocommerce.Product, error)
	CreateProduct(payload *woocommerce.ProductPayload) (*woocommerce.Product, error)
	UpdateProduct(id int64, payload *woocommerce.ProductPayload) (*woocommerce.Product, error)
}

// Store is the local staging store keyed by barcode.
type Store interface {
	FindByBarcode(barcode string) (*models.StagedProduct, error)
	FindByID(id string) (*models.StagedProduct, error)
	Create(product *models.StagedProduct) error
	Update(product *models.StagedProduct) error
}

// RunRecorder persists importer audit records.
type RunRecorder interface {
	RecordRun(run *models.ImportRun) error
}
