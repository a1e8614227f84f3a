package sync

import (
	"errors"

	"kozsync/internal/models"

	"gorm.io/gorm"
)

// GormStore backs Store and RunRecorder with the application database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByBarcode(barcode string) (*models.StagedProduct, error) {
	var product models.StagedProduct
	err := s.db.Where("barcode = ?", barcode).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormStore) FindByID(id string) (*models.StagedProduct, error) {
	var product models.StagedProduct
	err := s.db.First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormStore) Create(product *models.StagedProduct) error {
	return s.db.Create(product).Error
}

func (s *GormStore) Update(product *models.StagedProduct) error {
	return s.db.Save(product).Error
}

func (s *GormStore) RecordRun(run *models.ImportRun) error {
	return s.db.Create(run).Error
}
