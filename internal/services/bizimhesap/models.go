package bizimhesap

// Invoice is the B2B invoice body sent to BizimHesap.
type Invoice struct {
	FirmID      string        `json:"firmId"`
	InvoiceNo   string        `json:"invoiceNo"`
	InvoiceDate string        `json:"invoiceDate"`
	Customer    Customer      `json:"customer"`
	Details     []InvoiceLine `json:"details"`
	Totals      Totals        `json:"totals"`
}

type Customer struct {
	Title   string `json:"title"`
	TaxNo   string `json:"taxNo,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type InvoiceLine struct {
	ProductName string  `json:"productName"`
	Barcode     string  `json:"barcode,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TaxRate     float64 `json:"taxRate"`
	Total       float64 `json:"grossPrice"`
}

type Totals struct {
	Gross    float64 `json:"gross"`
	Discount float64 `json:"discount"`
	Net      float64 `json:"net"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

type addInvoiceResponse struct {
	Data  *InvoiceResult `json:"data"`
	Error string         `json:"error"`
}

// InvoiceResult identifies the invoice created on BizimHesap.
type InvoiceResult struct {
	GUID string `json:"guid"`
	URL  string `json:"url"`
}
