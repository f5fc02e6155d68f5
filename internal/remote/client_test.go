package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/teerapat29/coffee-storefront/internal/catalog"
)

func TestFetchProductsDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/getProducts" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":[{"_id":"p1","name":"House Blend","price":450,"brand":"Nescafe"},{"_id":"p2","name":"Dark Roast","price":780}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	products, err := c.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "p1" || products[0].Price != 450 {
		t.Fatalf("unexpected first product: %+v", products[0])
	}
}

func TestFetchProductsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	if _, err := c.FetchProducts(context.Background()); !errors.Is(err, ErrBadStatus) {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
}

func TestFetchProductsMalformedPayload(t *testing.T) {
	cases := map[string]string{
		"not json":         `<html>oops</html>`,
		"missing envelope": `{"products":[]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, srv.Client())
			if _, err := c.FetchProducts(context.Background()); !errors.Is(err, ErrBadPayload) {
				t.Fatalf("expected ErrBadPayload, got %v", err)
			}
		})
	}
}

func TestFetchProductByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/p1":
			io.WriteString(w, `{"data":{"_id":"p1","name":"House Blend","price":450,"discount":10}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())

	p, err := c.FetchProductByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if p.Name != "House Blend" || p.EffectivePrice() != 405 {
		t.Fatalf("unexpected product: %+v", p)
	}

	if _, err := c.FetchProductByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for 404, got %v", err)
	}
}

func TestAddProductSendsMultipartForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/addProduct" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("could not parse multipart body: %v", err)
		}
		if got := r.FormValue("name"); got != "Mocha Blend" {
			t.Fatalf("expected name field, got %q", got)
		}
		if got := r.FormValue("price"); got != "640" {
			t.Fatalf("expected price field, got %q", got)
		}
		small := r.MultipartForm.File["image_small"]
		if len(small) != 2 {
			t.Fatalf("expected 2 small image parts, got %d", len(small))
		}
		f, err := small[0].Open()
		if err != nil {
			t.Fatalf("could not open image part: %v", err)
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		if string(b) != "front" {
			t.Fatalf("unexpected image content %q", string(b))
		}

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"data":{"_id":"new-1","name":"Mocha Blend"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	created, err := c.AddProduct(context.Background(), catalog.NewProductInput{
		Name:     "Mocha Blend",
		Brand:    "Illy",
		Price:    "640",
		Quantity: "12",
		ImageSmall: []catalog.ImageFile{
			{Name: "front.jpg", Content: []byte("front")},
			{Name: "back.jpg", Content: []byte("back")},
		},
	})
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}
	if created.ID != "new-1" {
		t.Fatalf("unexpected created product: %+v", created)
	}
}
