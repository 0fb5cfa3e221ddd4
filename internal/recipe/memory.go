package recipe

import (
	"context"
	"sync"
)

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory recipe store, used in tests and when no
// database is configured. Safe for concurrent access.
type MemoryStore struct {
	mu      sync.RWMutex
	recipes map[string]*Recipe
	order   []string // insertion order, newest last
}

// NewMemoryStore creates an empty in-memory recipe store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recipes: make(map[string]*Recipe)}
}

// SaveRecipe persists a recipe. Overwrites if it already exists.
func (s *MemoryStore) SaveRecipe(ctx context.Context, recipe *Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.recipes[recipe.ID]; !exists {
		s.order = append(s.order, recipe.ID)
	}
	stored := *recipe
	s.recipes[recipe.ID] = &stored
	return nil
}

// GetRecipeByID retrieves a recipe by id. A missing recipe returns (nil, nil)
// to mirror the Postgres store.
func (s *MemoryStore) GetRecipeByID(ctx context.Context, id string) (*Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, nil
	}
	out := *r
	return &out, nil
}

// ListRecentRecipes returns up to limit recipes, newest first.
func (s *MemoryStore) ListRecentRecipes(ctx context.Context, limit int) ([]*Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.order))
	copy(ids, s.order)

	var recipes []*Recipe
	for i := len(ids) - 1; i >= 0 && len(recipes) < limit; i-- {
		r := *s.recipes[ids[i]]
		recipes = append(recipes, &r)
	}
	return recipes, nil
}
