package services

import (
	"context"
	"errors"
	"sync"

	"github.com/javajoker/vinyl-storefront/internal/models"
)

func ptr(v float64) *float64 { return &v }

func item(id int, name, artist, genre string, year int, vinyl, cd *float64) models.CatalogItem {
	return models.CatalogItem{
		ID:         id,
		Name:       name,
		Artist:     artist,
		Genre:      genre,
		Year:       models.NewYear(year),
		Image:      "img/" + name + ".jpg",
		Stock:      5,
		VinylPrice: vinyl,
		CDPrice:    cd,
	}
}

func ids(items []models.CatalogItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// failingStorage fails every write after the first n.
type failingStorage struct {
	*MemoryCartStorage
	mu     sync.Mutex
	allow  int
	writes int
}

func (f *failingStorage) Save(ctx context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.writes > f.allow {
		return errors.New("disk full")
	}
	return f.MemoryCartStorage.Save(ctx, key, data)
}

type staticSource struct {
	items []models.CatalogItem
	err   error
	calls int
}

func (s *staticSource) Load(ctx context.Context) ([]models.CatalogItem, error) {
	s.calls++
	return s.items, s.err
}
