package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/teerapat29/coffee-storefront/internal/catalog"
	"github.com/teerapat29/coffee-storefront/internal/remote"
)

// fakeRemote lets tests script the remote API per call.
type fakeRemote struct {
	fetchProducts func(ctx context.Context) ([]catalog.Product, error)
	fetchByID     func(ctx context.Context, id string) (catalog.Product, error)
	addProduct    func(ctx context.Context, in catalog.NewProductInput) (catalog.Product, error)
}

func (f *fakeRemote) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	return f.fetchProducts(ctx)
}

func (f *fakeRemote) FetchProductByID(ctx context.Context, id string) (catalog.Product, error) {
	return f.fetchByID(ctx, id)
}

func (f *fakeRemote) AddProduct(ctx context.Context, in catalog.NewProductInput) (catalog.Product, error) {
	return f.addProduct(ctx, in)
}

func TestRefreshCatalogReplacesProducts(t *testing.T) {
	want := []catalog.Product{{ID: "a"}, {ID: "b"}}
	s := New(&fakeRemote{
		fetchProducts: func(ctx context.Context) ([]catalog.Product, error) { return want, nil },
	})

	if err := s.RefreshCatalog(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if got := s.Products(); len(got) != 2 {
		t.Fatalf("expected 2 products after refresh, got %d", len(got))
	}
	if s.IsFetching() {
		t.Fatalf("expected isFetching cleared after refresh")
	}
	if s.LastError() != ErrorNone {
		t.Fatalf("expected no lastError, got %q", s.LastError())
	}
}

func TestRefreshCatalogFailureLeavesStateUntouched(t *testing.T) {
	s := New(&fakeRemote{
		fetchProducts: func(ctx context.Context) ([]catalog.Product, error) {
			return nil, errors.New("connection refused")
		},
	})
	s.SetProducts([]catalog.Product{{ID: "P1"}})

	err := s.RefreshCatalog(context.Background())
	if err == nil {
		t.Fatalf("expected refresh to report the failure")
	}

	got := s.Products()
	if len(got) != 1 || got[0].ID != "P1" {
		t.Fatalf("expected products untouched after failure, got %+v", got)
	}
	if s.IsFetching() {
		t.Fatalf("expected isFetching cleared after failure")
	}
	if s.LastError() != ErrorTransport {
		t.Fatalf("expected transport lastError, got %q", s.LastError())
	}
}

func TestRefreshCatalogClassifiesPayloadErrors(t *testing.T) {
	s := New(&fakeRemote{
		fetchProducts: func(ctx context.Context) ([]catalog.Product, error) {
			return nil, remote.ErrBadPayload
		},
	})

	if err := s.RefreshCatalog(context.Background()); err == nil {
		t.Fatalf("expected refresh to fail")
	}
	if s.LastError() != ErrorPayload {
		t.Fatalf("expected payload lastError, got %q", s.LastError())
	}
}

func TestRefreshCatalogFailureDoesNotClobberCartOrFilters(t *testing.T) {
	s := New(&fakeRemote{
		fetchProducts: func(ctx context.Context) ([]catalog.Product, error) {
			return nil, errors.New("boom")
		},
	})
	s.AddToCart(catalog.Product{ID: "A", Price: 10}, 2)
	_ = s.SetFilter("brand", "Illy")

	_ = s.RefreshCatalog(context.Background())

	if items := s.CartItems(); len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("cart was clobbered by fetch: %+v", items)
	}
	if f := s.Filters(); f.Brand != "Illy" {
		t.Fatalf("filters were clobbered by fetch: %+v", f)
	}
}

// gatedRemote blocks each FetchProducts call on its own gate so tests can
// control completion order of overlapping refreshes.
type gatedRemote struct {
	mu      sync.Mutex
	calls   int
	started chan int
	gates   []chan []catalog.Product
}

func (r *gatedRemote) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	r.mu.Lock()
	idx := r.calls
	r.calls++
	r.mu.Unlock()
	r.started <- idx
	return <-r.gates[idx], nil
}

func (r *gatedRemote) FetchProductByID(ctx context.Context, id string) (catalog.Product, error) {
	return catalog.Product{}, errors.New("not scripted")
}

func (r *gatedRemote) AddProduct(ctx context.Context, in catalog.NewProductInput) (catalog.Product, error) {
	return catalog.Product{}, errors.New("not scripted")
}

func TestOverlappingRefreshesLastIssuedWins(t *testing.T) {
	rem := &gatedRemote{
		started: make(chan int),
		gates:   []chan []catalog.Product{make(chan []catalog.Product), make(chan []catalog.Product)},
	}
	s := New(rem)

	done := make(chan error, 2)
	go func() { done <- s.RefreshCatalog(context.Background()) }()
	<-rem.started
	go func() { done <- s.RefreshCatalog(context.Background()) }()
	<-rem.started

	// second (latest-issued) refresh resolves first and is applied
	rem.gates[1] <- []catalog.Product{{ID: "fresh"}}
	if err := <-done; err != nil {
		t.Fatalf("latest refresh failed: %v", err)
	}

	// the first refresh now resolves late; its response must be discarded
	rem.gates[0] <- []catalog.Product{{ID: "stale"}}
	if err := <-done; err != nil {
		t.Fatalf("stale refresh should resolve without error, got %v", err)
	}

	got := s.Products()
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("expected latest-issued response to win, got %+v", got)
	}
}

func TestLoadProductSetsSpecificProduct(t *testing.T) {
	want := catalog.Product{ID: "bean-1", Name: "House Blend"}
	s := New(&fakeRemote{
		fetchByID: func(ctx context.Context, id string) (catalog.Product, error) {
			if id != "bean-1" {
				t.Fatalf("unexpected id %q", id)
			}
			return want, nil
		},
	})

	got, err := s.LoadProduct(context.Background(), "bean-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Name != "House Blend" {
		t.Fatalf("unexpected product returned: %+v", got)
	}

	sp, ok := s.SpecificProduct()
	if !ok || sp.ID != "bean-1" {
		t.Fatalf("expected specificProduct set, got %+v ok=%v", sp, ok)
	}
}

func TestLoadProductFailureKeepsPreviousSelection(t *testing.T) {
	calls := 0
	s := New(&fakeRemote{
		fetchByID: func(ctx context.Context, id string) (catalog.Product, error) {
			calls++
			if calls == 1 {
				return catalog.Product{ID: "first"}, nil
			}
			return catalog.Product{}, remote.ErrNotFound
		},
	})

	if _, err := s.LoadProduct(context.Background(), "first"); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if _, err := s.LoadProduct(context.Background(), "second"); err == nil {
		t.Fatalf("expected second load to fail")
	}

	sp, ok := s.SpecificProduct()
	if !ok || sp.ID != "first" {
		t.Fatalf("expected previous selection kept, got %+v ok=%v", sp, ok)
	}
	if s.IsFetching() {
		t.Fatalf("expected isFetching cleared")
	}
}

func TestSubmitProductRelaysInput(t *testing.T) {
	var relayed catalog.NewProductInput
	s := New(&fakeRemote{
		addProduct: func(ctx context.Context, in catalog.NewProductInput) (catalog.Product, error) {
			relayed = in
			return catalog.Product{ID: "new-1", Name: in.Name}, nil
		},
	})

	in := catalog.NewProductInput{
		Name:       "Mocha Blend",
		Brand:      "Illy",
		Price:      "640",
		Quantity:   "12",
		ImageSmall: []catalog.ImageFile{{Name: "small.jpg", Content: []byte("img")}},
	}
	created, err := s.SubmitProduct(context.Background(), in)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if created.ID != "new-1" {
		t.Fatalf("unexpected created product: %+v", created)
	}
	if relayed.Name != "Mocha Blend" || len(relayed.ImageSmall) != 1 {
		t.Fatalf("input not relayed verbatim: %+v", relayed)
	}
}
