package sync

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CategoryFeed maps a main category name to its sub-category descriptors.
type CategoryFeed map[string][]SubCategory

type SubCategory struct {
	Name string `json:"name"`
}

// ProductFeed is the bulk product export. Each entry is kept raw so the
// staging store can preserve the original record verbatim.
type ProductFeed struct {
	Count    int               `json:"count"`
	Products []json.RawMessage `json:"products"`
}

// FeedProduct is the typed view of one product feed entry.
type FeedProduct struct {
	Barcode      string    `json:"barcode"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Brand        string    `json:"brand"`
	Price        FlexFloat `json:"price"`
	Currency     string    `json:"currency"`
	MainCategory string    `json:"main_category"`
	SubCategory  string    `json:"sub_category"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	URL          string    `json:"url"`
	Rating       FlexFloat `json:"rating"`
	ReviewCount  FlexInt   `json:"review_count"`
}

// FlexFloat decodes feed numerics that arrive as numbers, strings or null.
// Anything non-numeric falls back to zero.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = 0
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			*f = FlexFloat(n)
		}
	}
	return nil
}

// FlexInt decodes feed integers with the same leniency as FlexFloat.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	*i = 0
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*i = FlexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.Atoi(s); err == nil {
			*i = FlexInt(n)
		}
	}
	return nil
}

// ReadCategoryFeed decodes a category feed. A malformed feed is the one fatal
// condition of the pipeline.
func ReadCategoryFeed(r io.Reader) (CategoryFeed, error) {
	var feed CategoryFeed
	if err := json.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode category feed: %w", err)
	}
	return feed, nil
}

// ReadProductFeed decodes a product feed.
func ReadProductFeed(r io.Reader) (*ProductFeed, error) {
	var feed ProductFeed
	if err := json.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode product feed: %w", err)
	}
	return &feed, nil
}

// ReadCategoryFeedFile reads a category feed from disk.
func ReadCategoryFeedFile(path string) (CategoryFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %w", err)
	}
	defer f.Close()
	return ReadCategoryFeed(f)
}

// ReadProductFeedFile reads a product feed from disk.
func ReadProductFeedFile(path string) (*ProductFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %w", err)
	}
	defer f.Close()
	return ReadProductFeed(f)
}
