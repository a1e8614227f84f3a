package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportRun is the audit record written for every importer invocation.
type ImportRun struct {
	ID         string     `json:"id" gorm:"primary_key"`
	Kind       ImportKind `json:"kind" gorm:"not null"`
	DryRun     bool       `json:"dry_run" gorm:"default:false"`
	Total      int        `json:"total" gorm:"default:0"`
	Created    int        `json:"created" gorm:"default:0"`
	Updated    int        `json:"updated" gorm:"default:0"`
	Skipped    int        `json:"skipped" gorm:"default:0"`
	Failed     int        `json:"failed" gorm:"default:0"`
	Errors     string     `json:"errors" gorm:"type:text"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

type ImportKind string

const (
	ImportKindCategories ImportKind = "categories"
	ImportKindProducts   ImportKind = "products"
)

func (r *ImportRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
