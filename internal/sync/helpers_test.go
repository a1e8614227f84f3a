package sync

import (
	"encoding/json"
	"errors"
	"fmt"

	"kozsync/internal/logger"
	"kozsync/internal/models"
	"kozsync/internal/services/woocommerce"
)

func testLogger() *logger.Logger {
	return logger.New("error")
}

func decodeJSON(s string, v interface{}) error {
	return json.Unmarshal([]byte(s), v)
}

// fakeCatalog is an in-memory WooCommerce stand-in. Created categories become
// visible to later enumerations, like the real store.
type fakeCatalog struct {
	categories    []woocommerce.Category
	attributes    []woocommerce.Attribute
	terms         map[int64][]woocommerce.AttributeTerm
	productsBySKU map[string]*woocommerce.Product

	nextID            int64
	createCategoryErr error
	createProductErr  error

	createdCategories []woocommerce.CategoryPayload
	createdProducts   []*woocommerce.ProductPayload
	updatedProducts   map[int64]*woocommerce.ProductPayload
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		terms:           make(map[int64][]woocommerce.AttributeTerm),
		productsBySKU:   make(map[string]*woocommerce.Product),
		updatedProducts: make(map[int64]*woocommerce.ProductPayload),
		nextID:          1000,
	}
}

func (f *fakeCatalog) GetCategories(page, perPage int) ([]woocommerce.Category, error) {
	start := (page - 1) * perPage
	if start >= len(f.categories) {
		return nil, nil
	}
	end := start + perPage
	if end > len(f.categories) {
		end = len(f.categories)
	}
	return f.categories[start:end], nil
}

func (f *fakeCatalog) CreateCategory(payload woocommerce.CategoryPayload) (*woocommerce.Category, error) {
	if f.createCategoryErr != nil {
		return nil, f.createCategoryErr
	}
	f.createdCategories = append(f.createdCategories, payload)
	f.nextID++
	category := woocommerce.Category{
		ID:     f.nextID,
		Name:   payload.Name,
		Slug:   payload.Slug,
		Parent: payload.Parent,
	}
	f.categories = append(f.categories, category)
	return &category, nil
}

func (f *fakeCatalog) GetAttributes() ([]woocommerce.Attribute, error) {
	return f.attributes, nil
}

func (f *fakeCatalog) GetAttributeTerms(attributeID int64, page, perPage int) ([]woocommerce.AttributeTerm, error) {
	terms := f.terms[attributeID]
	start := (page - 1) * perPage
	if start >= len(terms) {
		return nil, nil
	}
	end := start + perPage
	if end > len(terms) {
		end = len(terms)
	}
	return terms[start:end], nil
}

func (f *fakeCatalog) GetProductBySKU(sku string) (*woocommerce.Product, error) {
	return f.productsBySKU[sku], nil
}

func (f *fakeCatalog) CreateProduct(payload *woocommerce.ProductPayload) (*woocommerce.Product, error) {
	if f.createProductErr != nil {
		return nil, f.createProductErr
	}
	f.createdProducts = append(f.createdProducts, payload)
	f.nextID++
	product := &woocommerce.Product{ID: f.nextID, Name: payload.Name, SKU: payload.SKU}
	f.productsBySKU[payload.SKU] = product
	return product, nil
}

func (f *fakeCatalog) UpdateProduct(id int64, payload *woocommerce.ProductPayload) (*woocommerce.Product, error) {
	f.updatedProducts[id] = payload
	return &woocommerce.Product{ID: id, Name: payload.Name, SKU: payload.SKU}, nil
}

// fakeStore is an in-memory staging store.
type fakeStore struct {
	byID      map[string]*models.StagedProduct
	byBarcode map[string]*models.StagedProduct
	runs      []*models.ImportRun
	nextID    int
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byID:      make(map[string]*models.StagedProduct),
		byBarcode: make(map[string]*models.StagedProduct),
	}
}

func (s *fakeStore) FindByBarcode(barcode string) (*models.StagedProduct, error) {
	return s.byBarcode[barcode], nil
}

func (s *fakeStore) FindByID(id string) (*models.StagedProduct, error) {
	return s.byID[id], nil
}

func (s *fakeStore) Create(product *models.StagedProduct) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, exists := s.byBarcode[product.Barcode]; exists {
		return errors.New("duplicate barcode")
	}
	s.nextID++
	product.ID = fmt.Sprintf("row-%d", s.nextID)
	s.byID[product.ID] = product
	s.byBarcode[product.Barcode] = product
	return nil
}

func (s *fakeStore) Update(product *models.StagedProduct) error {
	s.byID[product.ID] = product
	s.byBarcode[product.Barcode] = product
	return nil
}

func (s *fakeStore) RecordRun(run *models.ImportRun) error {
	s.runs = append(s.runs, run)
	return nil
}
