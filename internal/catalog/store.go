package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/linemk/coffee-shop/internal/domain/models"
)

// CatalogAPI is the slice of the backend client the catalog needs.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// Store holds the product list, the category list and the active
// category filter. Products and categories are fetched together and
// treated as one unit: if either fetch fails, both lists reset to empty
// and the error is recorded. There is no partial-success state.
type Store struct {
	log *slog.Logger
	api CatalogAPI

	mu         sync.Mutex
	products   []models.Product
	categories []models.Category
	selected   string // category id, "" means no filter
	loading    bool
	err        error
	gen        uint64
	closed     bool
	subs       []func()
}

func NewStore(log *slog.Logger, api CatalogAPI) *Store {
	return &Store{log: log, api: api}
}

// Load fetches products and categories concurrently and joins on both.
// A Load that finishes after a newer Load, or after Close, discards its
// results instead of clobbering fresher state.
func (s *Store) Load(ctx context.Context) error {
	const op = "catalog.Store.Load"
	logger := s.log.With(slog.String("op", op))

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.gen++
	gen := s.gen
	s.loading = true
	s.err = nil
	s.mu.Unlock()
	s.notify()

	var (
		wg         sync.WaitGroup
		products   []models.Product
		categories []models.Category
		pErr, cErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		products, pErr = s.api.ListProducts(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, cErr = s.api.ListCategories(ctx)
	}()
	wg.Wait()

	err := pErr
	if err == nil {
		err = cErr
	}

	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		logger.Debug("discarding stale catalog load")
		return nil
	}
	s.loading = false
	if err != nil {
		// all-or-nothing: one failed fetch empties both lists
		s.products = nil
		s.categories = nil
		s.err = err
		s.mu.Unlock()
		s.notify()
		logger.Error("failed to load catalog", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.products = products
	s.categories = categories
	s.mu.Unlock()
	s.notify()

	logger.Debug("catalog loaded",
		slog.Int("products", len(products)),
		slog.Int("categories", len(categories)),
	)
	return nil
}

// SelectCategory sets the active filter. An empty id clears the filter;
// an id not present in the category list is allowed and simply yields an
// empty filtered view.
func (s *Store) SelectCategory(id string) {
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
	s.notify()
}

// SelectedCategory returns the active filter, empty when unfiltered.
func (s *Store) SelectedCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Filtered derives the visible product list from the full list and the
// active filter. Recomputed on every call.
func (s *Store) Filtered() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		out := make([]models.Product, len(s.products))
		copy(out, s.products)
		return out
	}
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Category.ID == s.selected {
			out = append(out, p)
		}
	}
	return out
}

// Products returns the full unfiltered list.
func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Categories returns the category list.
func (s *Store) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Loading reports whether a load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error of the last finished load, nil on success.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close marks the store torn down: loads still in flight will discard
// their results, and future loads are no-ops.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Subscribe registers fn to run after every state change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
