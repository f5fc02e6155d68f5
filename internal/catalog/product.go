package catalog

// Product represents a catalog entry as served by the remote product API.
// JSON tags follow the remote contract, so a product decodes verbatim.
// Products are read copies: nothing in this codebase ever mutates one.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Type        string   `json:"type,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Flavor      string   `json:"flavor,omitempty"`
	NetWeight   string   `json:"netWeight,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Price       float64  `json:"price"`
	Discount    float64  `json:"discount"`
	Quantity    int      `json:"quantity"`
	Sold        int      `json:"sold"`
	Rating      float64  `json:"rating"`
	ImageSmall  []string `json:"image_small,omitempty"`
	ImageBig    []string `json:"image_big,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// EffectivePrice is the listed price after the discount percentage is applied.
func (p Product) EffectivePrice() float64 {
	return p.Price * (1 - p.Discount/100)
}

// CategoryOrType returns the category used for filtering. Some catalog rows
// only carry `type` (e.g. "Instant Coffee"), so it stands in when category
// is empty.
func (p Product) CategoryOrType() string {
	if p.Category != "" {
		return p.Category
	}
	return p.Type
}

// ImageFile is an uploaded image carried through to the remote API.
type ImageFile struct {
	Name    string
	Content []byte
}

// NewProductInput is the shape relayed to the remote addProduct endpoint.
// Scalar fields stay strings because the admin form submits them as form
// values; the remote API owns parsing and validation of the final record.
type NewProductInput struct {
	Name        string
	Brand       string
	Description string
	Tags        string
	Price       string
	Discount    string
	Quantity    string
	Sold        string
	NetWeight   string
	Type        string
	Flavor      string
	Reviews     string
	Rating      string
	User        string
	ImageSmall  []ImageFile
	ImageBig    []ImageFile
}

// FormFields returns the scalar fields keyed by their multipart field names.
func (in NewProductInput) FormFields() map[string]string {
	return map[string]string{
		"name":        in.Name,
		"brand":       in.Brand,
		"description": in.Description,
		"tags":        in.Tags,
		"price":       in.Price,
		"discount":    in.Discount,
		"quantity":    in.Quantity,
		"sold":        in.Sold,
		"netWeight":   in.NetWeight,
		"type":        in.Type,
		"flavor":      in.Flavor,
		"reviews":     in.Reviews,
		"rating":      in.Rating,
		"user":        in.User,
	}
}
