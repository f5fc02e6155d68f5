package store

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/teerapat29/coffee-storefront/internal/catalog"
)

var (
	ErrNotInCart     = errors.New("product not in cart")
	ErrUnknownFilter = errors.New("unknown filter field")
)

// CartItem pairs a product snapshot (taken at add time) with a quantity.
type CartItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Store is the single source of truth for catalog, cart and filter state.
// It is constructed once in main and passed by reference to every
// consumer; tests build their own isolated instances.
//
// All state lives behind one mutex so each operation is atomic. Reads
// return copies, never internal slices. The async fetch operations in
// fetch.go release the lock across network I/O and on completion touch
// only the fields they own (products / specificProduct / isFetching /
// lastError), so cart and filter edits interleave safely with in-flight
// fetches.
type Store struct {
	mu sync.RWMutex

	products        []catalog.Product
	specificProduct *catalog.Product
	cartItems       []CartItem
	filters         catalog.Filters
	isFetching      bool
	lastError       ErrorKind

	// request-generation tokens: a completing fetch only applies its
	// response when it is still the most recently issued one
	catalogGen uint64
	productGen uint64

	remote Remote
}

func New(remote Remote) *Store {
	return &Store{
		filters: catalog.DefaultFilters(),
		remote:  remote,
	}
}

// SetProducts replaces the catalog wholesale. The caller-supplied list is
// trusted verbatim; derived views recompute on next read.
func (s *Store) SetProducts(products []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make([]catalog.Product, len(products))
	copy(s.products, products)
}

// Products returns a copy of the raw catalog in its source order.
func (s *Store) Products() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ProductByID looks a product up in the loaded catalog.
func (s *Store) ProductByID(id string) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// SpecificProduct returns the product loaded for the detail view, if any.
func (s *Store) SpecificProduct() (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.specificProduct == nil {
		return catalog.Product{}, false
	}
	return *s.specificProduct, true
}

func (s *Store) IsFetching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isFetching
}

func (s *Store) LastError() ErrorKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// FilteredProducts derives the filtered, sorted catalog view from the
// current products and filters. The result is freshly computed on every
// call and never stored.
func (s *Store) FilteredProducts() []catalog.Product {
	s.mu.RLock()
	products := s.products
	filters := s.filters
	s.mu.RUnlock()
	return catalog.Apply(products, filters)
}

// AddToCart merges quantity into the existing line for the product, or
// appends a new line. Quantities below 1 are floored to 1.
func (s *Store) AddToCart(p catalog.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cartItems {
		if s.cartItems[i].Product.ID == p.ID {
			s.cartItems[i].Quantity += quantity
			return
		}
	}
	s.cartItems = append(s.cartItems, CartItem{Product: p, Quantity: quantity})
}

// RemoveFromCart deletes the line for the product id; absent ids are a no-op.
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cartItems {
		if s.cartItems[i].Product.ID == productID {
			s.cartItems = append(s.cartItems[:i], s.cartItems[i+1:]...)
			return
		}
	}
}

// IncrementCartItem raises the line quantity by one; no upper bound.
func (s *Store) IncrementCartItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cartItems {
		if s.cartItems[i].Product.ID == productID {
			s.cartItems[i].Quantity++
			return
		}
	}
}

// DecrementCartItem lowers the line quantity by one but never below 1.
// Deleting a line takes an explicit RemoveFromCart.
func (s *Store) DecrementCartItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cartItems {
		if s.cartItems[i].Product.ID == productID && s.cartItems[i].Quantity > 1 {
			s.cartItems[i].Quantity--
			return
		}
	}
}

// CartItems returns a copy of the cart in first-added order.
func (s *Store) CartItems() []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CartItem, len(s.cartItems))
	copy(out, s.cartItems)
	return out
}

// TotalItems sums all line quantities.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.cartItems {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums listed price x quantity over the cart.
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, item := range s.cartItems {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// TotalDiscounted sums effective (discounted) price x quantity over the
// cart, for callers that display the payable amount.
func (s *Store) TotalDiscounted() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, item := range s.cartItems {
		total += item.Product.EffectivePrice() * float64(item.Quantity)
	}
	return total
}

func (s *Store) Filters() catalog.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilter sets a single named filter field, leaving the rest untouched.
// There is no cross-field fixup: setting minPrice above maxPrice is the
// caller's problem, exactly like the filter controls expect.
func (s *Store) SetFilter(field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch field {
	case "minPrice":
		v, ok := toFloat(value)
		if !ok {
			return ErrUnknownFilter
		}
		s.filters.MinPrice = v
	case "maxPrice":
		v, ok := toFloat(value)
		if !ok {
			return ErrUnknownFilter
		}
		s.filters.MaxPrice = v
	case "brand":
		v, ok := value.(string)
		if !ok {
			return ErrUnknownFilter
		}
		s.filters.Brand = v
	case "category":
		v, ok := value.(string)
		if !ok {
			return ErrUnknownFilter
		}
		s.filters.Category = v
	case "sortby":
		v, ok := value.(string)
		if !ok {
			return ErrUnknownFilter
		}
		s.filters.SortBy = catalog.SortOption(v)
	default:
		return ErrUnknownFilter
	}
	return nil
}

// ClearFilters resets every filter field to the unconstrained defaults in
// one atomic update.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = catalog.DefaultFilters()
}

// FilterOptions lists the distinct brands and categories present in the
// loaded catalog, for the side-filter controls.
type FilterOptions struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
}

func (s *Store) Options() FilterOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()

	brands := map[string]string{}
	categories := map[string]string{}
	for _, p := range s.products {
		if p.Brand != "" {
			brands[strings.ToLower(p.Brand)] = p.Brand
		}
		if c := p.CategoryOrType(); c != "" {
			categories[strings.ToLower(c)] = c
		}
	}
	return FilterOptions{
		Brands:     sortedValues(brands),
		Categories: sortedValues(categories),
	}
}

func sortedValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// toFloat accepts the numeric shapes a JSON body can deliver.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
