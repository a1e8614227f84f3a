package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StagedProduct is one record pulled from the Kozvit feed, pending or already
// reflected on the WooCommerce store. Barcode is the natural key and never
// changes after creation.
type StagedProduct struct {
	ID              string     `json:"id" gorm:"primary_key"`
	Barcode         string     `json:"barcode" gorm:"unique;not null"`
	ExternalSKU     string     `json:"external_sku"`
	Name            string     `json:"name" gorm:"not null"`
	Brand           string     `json:"brand"`
	Price           float64    `json:"price" gorm:"type:decimal(10,2);default:0"`
	Currency        string     `json:"currency" gorm:"default:TRY"`
	MainCategory    string     `json:"main_category"`
	SubCategory     string     `json:"sub_category"`
	Description     string     `json:"description"`
	ImageURL        string     `json:"image_url"`
	SourceURL       string     `json:"source_url"`
	Rating          float64    `json:"rating" gorm:"type:decimal(3,1);default:0"`
	ReviewCount     int        `json:"review_count" gorm:"default:0"`
	RawPayload      string     `json:"raw_payload" gorm:"type:text"`
	RemoteProductID *int64     `json:"remote_product_id"`
	SyncStatus      SyncStatus `json:"sync_status" gorm:"default:pending"`
	SyncError       *string    `json:"sync_error"`
	SyncedAt        *time.Time `json:"synced_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusFailed  SyncStatus = "failed"
)

func (p *StagedProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
