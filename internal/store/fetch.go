package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/teerapat29/coffee-storefront/internal/catalog"
	"github.com/teerapat29/coffee-storefront/internal/remote"
)

// Remote is the slice of the product API the store depends on.
type Remote interface {
	FetchProducts(ctx context.Context) ([]catalog.Product, error)
	FetchProductByID(ctx context.Context, id string) (catalog.Product, error)
	AddProduct(ctx context.Context, in catalog.NewProductInput) (catalog.Product, error)
}

// ErrorKind classifies the outcome of the most recent fetch so UI
// collaborators can render failure states deterministically.
type ErrorKind string

const (
	ErrorNone      ErrorKind = ""
	ErrorTransport ErrorKind = "transport"
	ErrorPayload   ErrorKind = "payload"
)

func classify(err error) ErrorKind {
	if errors.Is(err, remote.ErrBadPayload) {
		return ErrorPayload
	}
	return ErrorTransport
}

// RefreshCatalog fetches the full catalog and replaces products on
// success. On any failure the catalog keeps its last-known-good value,
// lastError records the failure kind and the error is returned to the
// caller as well.
//
// Each invocation takes a fresh generation token; a response is applied
// only while its token is still the most recently issued, so overlapping
// refreshes resolve last-issued-wins rather than last-to-resolve-wins.
func (s *Store) RefreshCatalog(ctx context.Context) error {
	s.mu.Lock()
	s.isFetching = true
	s.catalogGen++
	gen := s.catalogGen
	s.mu.Unlock()

	products, err := s.remote.FetchProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isFetching = false
	stale := gen != s.catalogGen

	if err != nil {
		if !stale {
			s.lastError = classify(err)
		}
		fmt.Printf("warning: catalog refresh failed: %v\n", err)
		return err
	}
	if stale {
		return nil
	}
	s.products = products
	s.lastError = ErrorNone
	return nil
}

// LoadProduct fetches a single product for the detail view. On failure
// specificProduct keeps its previous value and the error is returned so
// the caller can respond instead of failing silently.
func (s *Store) LoadProduct(ctx context.Context, id string) (catalog.Product, error) {
	s.mu.Lock()
	s.isFetching = true
	s.productGen++
	gen := s.productGen
	s.mu.Unlock()

	p, err := s.remote.FetchProductByID(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isFetching = false
	stale := gen != s.productGen

	if err != nil {
		if !stale {
			s.lastError = classify(err)
		}
		fmt.Printf("warning: could not load product %s: %v\n", id, err)
		return catalog.Product{}, err
	}
	if !stale {
		s.specificProduct = &p
		s.lastError = ErrorNone
	}
	return p, nil
}

// SubmitProduct relays an already-validated NewProductInput to the remote
// addProduct endpoint. The store performs no field validation; callers
// validate before invoking (the admin handler does).
func (s *Store) SubmitProduct(ctx context.Context, in catalog.NewProductInput) (catalog.Product, error) {
	created, err := s.remote.AddProduct(ctx, in)
	if err != nil {
		fmt.Printf("warning: add product relay failed: %v\n", err)
		return catalog.Product{}, err
	}
	return created, nil
}
