package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"kozsync/internal/logger"

	"golang.org/x/time/rate"
)

// Client talks to the WooCommerce REST API (wc/v3) of a single store.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	httpClient     *http.Client
	limiter        *rate.Limiter
	logger         *logger.Logger
}

func NewClient(baseURL, consumerKey, consumerSecret string, logger *logger.Logger) *Client {
	return &Client{
		baseURL:        baseURL,
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// The store throttles bursts from the REST API; stay under it.
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		logger:  logger,
	}
}

// GetCategories fetches one page of product categories.
func (c *Client) GetCategories(page, perPage int) ([]Category, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("per_page", fmt.Sprintf("%d", perPage))

	var categories []Category
	if err := c.do("GET", "/wp-json/wc/v3/products/categories", query, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a product category and returns it with its new id.
func (c *Client) CreateCategory(payload CategoryPayload) (*Category, error) {
	var category Category
	if err := c.do("POST", "/wp-json/wc/v3/products/categories", nil, payload, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// GetAttributes fetches all global product attributes.
func (c *Client) GetAttributes() ([]Attribute, error) {
	var attributes []Attribute
	if err := c.do("GET", "/wp-json/wc/v3/products/attributes", nil, nil, &attributes); err != nil {
		return nil, err
	}
	return attributes, nil
}

// GetAttributeTerms fetches one page of terms for a global attribute.
func (c *Client) GetAttributeTerms(attributeID int64, page, perPage int) ([]AttributeTerm, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("per_page", fmt.Sprintf("%d", perPage))

	var terms []AttributeTerm
	path := fmt.Sprintf("/wp-json/wc/v3/products/attributes/%d/terms", attributeID)
	if err := c.do("GET", path, query, nil, &terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// GetProductBySKU looks up a product by SKU. Returns nil when no product
// carries that SKU.
func (c *Client) GetProductBySKU(sku string) (*Product, error) {
	query := url.Values{}
	query.Set("sku", sku)

	var products []Product
	if err := c.do("GET", "/wp-json/wc/v3/products", query, nil, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// CreateProduct creates a product and returns the stored representation.
func (c *Client) CreateProduct(payload *ProductPayload) (*Product, error) {
	var product Product
	if err := c.do("POST", "/wp-json/wc/v3/products", nil, payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct updates an existing product by id.
func (c *Client) UpdateProduct(id int64, payload *ProductPayload) (*Product, error) {
	var product Product
	path := fmt.Sprintf("/wp-json/wc/v3/products/%d", id)
	if err := c.do("PUT", path, nil, payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) do(method, path string, query url.Values, body, out interface{}) error {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	req.Header.Set("Content-Type", "application/json")

	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	c.logger.Debug("WooCommerce %s %s", method, req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed: %d - %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
