package woocommerce

// Category is a product category as returned by the WooCommerce REST API.
type Category struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Parent int64  `json:"parent"`
}

// CategoryPayload is the request body for creating a category.
type CategoryPayload struct {
	Name   string `json:"name"`
	Slug   string `json:"slug,omitempty"`
	Parent int64  `json:"parent,omitempty"`
}

// Attribute is a global product attribute (e.g. "Marka").
type Attribute struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// AttributeTerm is one term of a global attribute.
type AttributeTerm struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is the subset of a WooCommerce product this service reads back.
type Product struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// ProductPayload is the request body for creating or updating a product.
// Optional sections are omitted from the JSON when empty.
type ProductPayload struct {
	Name             string             `json:"name"`
	Type             string             `json:"type"`
	Status           string             `json:"status"`
	SKU              string             `json:"sku"`
	RegularPrice     string             `json:"regular_price"`
	Description      string             `json:"description,omitempty"`
	ShortDescription string             `json:"short_description,omitempty"`
	Categories       []CategoryRef      `json:"categories,omitempty"`
	Images           []Image            `json:"images,omitempty"`
	Attributes       []ProductAttribute `json:"attributes,omitempty"`
	MetaData         []MetaData         `json:"meta_data,omitempty"`
}

type CategoryRef struct {
	ID int64 `json:"id"`
}

type Image struct {
	Src string `json:"src"`
}

// ProductAttribute attaches an attribute to a product. A global attribute is
// referenced by ID, an ad-hoc one by Name.
type ProductAttribute struct {
	ID        int64    `json:"id,omitempty"`
	Name      string   `json:"name,omitempty"`
	Position  int      `json:"position"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
	Options   []string `json:"options"`
}

type MetaData struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}
