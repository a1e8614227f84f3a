package bizimhesap

import (
	"fmt"
	"time"

	"kozsync/internal/logger"

	"github.com/go-resty/resty/v2"
)

// Client forwards order invoices to the BizimHesap accounting service.
type Client struct {
	firmID string
	http   *resty.Client
	logger *logger.Logger
}

func NewClient(baseURL, firmID string, logger *logger.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{
		firmID: firmID,
		http:   http,
		logger: logger,
	}
}

// AddInvoice creates a B2B invoice and returns its guid and document URL.
func (c *Client) AddInvoice(invoice *Invoice) (*InvoiceResult, error) {
	invoice.FirmID = c.firmID

	var result addInvoiceResponse
	resp, err := c.http.R().
		SetBody(invoice).
		SetResult(&result).
		Post("/b2b/addinvoice")
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("API request failed: %d - %s", resp.StatusCode(), resp.String())
	}
	if result.Error != "" {
		return nil, fmt.Errorf("invoice rejected: %s", result.Error)
	}
	if result.Data == nil {
		return nil, fmt.Errorf("invoice response missing data")
	}

	c.logger.Info("Invoice %s forwarded to BizimHesap (%s)", invoice.InvoiceNo, result.Data.GUID)
	return result.Data, nil
}
