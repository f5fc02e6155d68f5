package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/teerapat29/coffee-storefront/internal/catalog"
)

var (
	// ErrNotFound is returned when the remote API answers 404.
	ErrNotFound = errors.New("product not found")
	// ErrBadStatus is returned for any other non-success HTTP status.
	ErrBadStatus = errors.New("remote API returned non-success status")
	// ErrBadPayload is returned when a response body does not decode into
	// the expected envelope.
	ErrBadPayload = errors.New("remote API returned malformed payload")
)

// Client talks to the remote product API. Timeouts are owned by the
// injected http.Client.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// The remote API wraps every payload in a {"data": ...} envelope.
type productsEnvelope struct {
	Data []catalog.Product `json:"data"`
}

type productEnvelope struct {
	Data *catalog.Product `json:"data"`
}

// FetchProducts retrieves the full catalog from GET {base}/getProducts.
func (c *Client) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/getProducts", nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return nil, err
	}

	var envelope productsEnvelope
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("%w: missing data field", ErrBadPayload)
	}
	return envelope.Data, nil
}

// FetchProductByID retrieves a single product from GET {base}/{id}.
// The enveloped {"data": Product} shape is the authoritative contract.
func (c *Client) FetchProductByID(ctx context.Context, id string) (catalog.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+id, nil)
	if err != nil {
		return catalog.Product{}, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return catalog.Product{}, err
	}
	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return catalog.Product{}, err
	}

	var envelope productEnvelope
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return catalog.Product{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if envelope.Data == nil || envelope.Data.ID == "" {
		return catalog.Product{}, fmt.Errorf("%w: missing data field", ErrBadPayload)
	}
	return *envelope.Data, nil
}

// AddProduct relays a new product to POST {base}/addProduct as multipart
// form data: scalar fields plus repeated image_small / image_big file parts.
func (c *Client) AddProduct(ctx context.Context, in catalog.NewProductInput) (catalog.Product, error) {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	for field, value := range in.FormFields() {
		if err := w.WriteField(field, value); err != nil {
			return catalog.Product{}, err
		}
	}
	if err := writeImageParts(w, "image_small", in.ImageSmall); err != nil {
		return catalog.Product{}, err
	}
	if err := writeImageParts(w, "image_big", in.ImageBig); err != nil {
		return catalog.Product{}, err
	}
	if err := w.Close(); err != nil {
		return catalog.Product{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/addProduct", body)
	if err != nil {
		return catalog.Product{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := c.http.Do(req)
	if err != nil {
		return catalog.Product{}, err
	}
	defer res.Body.Close()

	if err := checkStatus(res); err != nil {
		return catalog.Product{}, err
	}

	var envelope productEnvelope
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return catalog.Product{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if envelope.Data == nil {
		return catalog.Product{}, fmt.Errorf("%w: missing data field", ErrBadPayload)
	}
	return *envelope.Data, nil
}

func writeImageParts(w *multipart.Writer, field string, images []catalog.ImageFile) error {
	for _, img := range images {
		part, err := w.CreateFormFile(field, img.Name)
		if err != nil {
			return err
		}
		if _, err := part.Write(img.Content); err != nil {
			return err
		}
	}
	return nil
}

func checkStatus(res *http.Response) error {
	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrBadStatus, res.StatusCode)
	}
	return nil
}
