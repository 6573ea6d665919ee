// Package catalog holds the static deal catalog. Deals are loaded once from
// an embedded dataset at startup and are immutable afterwards, which makes
// the store safe for concurrent reads without locking.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/launchstack/benefits-api/internal/core/domain"
)

//go:embed deals.json
var dealsJSON []byte

// Store implements ports.DealCatalog over the embedded dataset.
type Store struct {
	deals []domain.Deal
	byID  map[string]int
}

// Load parses the embedded dataset and validates catalog invariants: ids are
// unique and every category belongs to the enumeration.
func Load() (*Store, error) {
	var deals []domain.Deal
	if err := json.Unmarshal(dealsJSON, &deals); err != nil {
		return nil, fmt.Errorf("catalog: parse dataset: %w", err)
	}

	byID := make(map[string]int, len(deals))
	for i, d := range deals {
		if d.ID == "" {
			return nil, fmt.Errorf("catalog: deal %d has no id", i)
		}
		if _, dup := byID[d.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate deal id %q", d.ID)
		}
		if !d.Category.Valid() {
			return nil, fmt.Errorf("catalog: deal %q has unknown category %q", d.ID, d.Category)
		}
		byID[d.ID] = i
	}

	return &Store{deals: deals, byID: byID}, nil
}

// Deals returns the full catalog in its fixed order. The returned slice is a
// copy so callers cannot reorder the catalog.
func (s *Store) Deals() []domain.Deal {
	return append([]domain.Deal(nil), s.deals...)
}

// DealByID returns the matching deal or domain.ErrDealNotFound.
func (s *Store) DealByID(id string) (*domain.Deal, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrDealNotFound
	}
	deal := s.deals[i]
	return &deal, nil
}

// Len returns the number of deals in the catalog.
func (s *Store) Len() int {
	return len(s.deals)
}
