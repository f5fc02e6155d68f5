package store

import (
	"io"
	"mime/multipart"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/teerapat29/coffee-storefront/internal/catalog"
)

// addProduct accepts the admin form as multipart form data, validates it
// the way the form does, and relays it to the remote API via the store.
func (h *Handler) addProduct(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "multipart form data is required"})
	}

	input := catalog.NewProductInput{
		Name:        formValue(form, "name"),
		Brand:       formValue(form, "brand"),
		Description: formValue(form, "description"),
		Tags:        formValue(form, "tags"),
		Price:       formValue(form, "price"),
		Discount:    formValue(form, "discount"),
		Quantity:    formValue(form, "quantity"),
		Sold:        formValue(form, "sold"),
		NetWeight:   formValue(form, "netWeight"),
		Type:        formValue(form, "type"),
		Flavor:      formValue(form, "flavor"),
		Reviews:     formValue(form, "reviews"),
		Rating:      formValue(form, "rating"),
		User:        formValue(form, "user"),
	}

	input.ImageSmall, err = readImages(form.File["image_small"])
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	input.ImageBig, err = readImages(form.File["image_big"])
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	// validate payload and return all validation errors together
	if ves := validateNewProduct(input); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	created, err := h.store.SubmitProduct(c.Context(), input)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func validateNewProduct(in catalog.NewProductInput) map[string]string {
	errs := map[string]string{}
	if in.Name == "" {
		errs["name"] = "name is required"
	}
	if in.Brand == "" {
		errs["brand"] = "brand is required"
	}
	if in.Price == "" {
		errs["price"] = "price is required"
	}
	if in.Quantity == "" {
		errs["quantity"] = "quantity is required"
	}
	if len(in.ImageSmall) == 0 {
		errs["image_small"] = "at least one small image is required"
	}
	return errs
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func readImages(headers []*multipart.FileHeader) ([]catalog.ImageFile, error) {
	images := make([]catalog.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		b, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, catalog.ImageFile{Name: fh.Filename, Content: b})
	}
	return images, nil
}

// seedProducts replaces the catalog with the provided list (or a default
// sample list) without touching the remote API. Gated by
// ALLOW_SEED_PRODUCTS=1 for local development.
func (h *Handler) seedProducts(c *fiber.Ctx) error {
	if os.Getenv("ALLOW_SEED_PRODUCTS") != "1" {
		return c.Status(fiber.StatusForbidden).SendString("seeding not allowed")
	}

	var products []catalog.Product
	if err := c.BodyParser(&products); err != nil {
		products = SampleProducts()
	}

	h.store.SetProducts(products)
	return c.JSON(products)
}

// SampleProducts is the default local catalog used by the seed endpoint
// and the seed CLI.
func SampleProducts() []catalog.Product {
	now := time.Now().UTC().Format(time.RFC3339)
	return []catalog.Product{
		{
			ID:          "sample-espresso-roast",
			Name:        "Espresso Roast Whole Bean",
			Brand:       "Lavazza",
			Type:        "Ground Coffee",
			Description: "Dark roasted blend for espresso machines",
			Price:       780,
			Discount:    10,
			Quantity:    40,
			Rating:      4.5,
			Tags:        []string{"espresso", "dark-roast"},
			ImageSmall:  []string{"/images/espresso-roast-small.jpg"},
			CreatedAt:   now,
		},
		{
			ID:          "sample-gold-instant",
			Name:        "Gold Blend Instant Coffee",
			Brand:       "Nescafe",
			Type:        "Instant Coffee",
			Description: "Smooth instant coffee, 200g jar",
			Price:       450,
			Quantity:    120,
			Rating:      4,
			Tags:        []string{"instant"},
			ImageSmall:  []string{"/images/gold-instant-small.jpg"},
			CreatedAt:   now,
		},
		{
			ID:          "sample-house-filter",
			Name:        "House Filter Ground",
			Brand:       "Starbucks",
			Type:        "Ground Coffee",
			Description: "Medium roast for drip brewers",
			Price:       1050,
			Discount:    5,
			Quantity:    25,
			Rating:      5,
			Tags:        []string{"filter", "medium-roast"},
			ImageSmall:  []string{"/images/house-filter-small.jpg"},
			CreatedAt:   now,
		},
	}
}
