package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"atelier/internal/models"
	"atelier/internal/storage"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	collectionsKey = "catalog.collections"
	productsKey    = "catalog.products"
)

// Fetcher supplies catalog snapshots from the upstream store API.
type Fetcher interface {
	Collections(ctx context.Context) ([]models.Collection, error)
	Products(ctx context.Context) ([]models.Product, error)
}

// ResolvedCollection is what a collection page renders: the resolved
// collection (possibly nil) and the products that matched the slug.
type ResolvedCollection struct {
	Collection *models.Collection `json:"collection"`
	Products   []models.Product   `json:"products"`
}

// Service resolves slugs against upstream catalog snapshots. Snapshots
// are cached in storage with a short TTL and concurrent fetches for the
// same snapshot collapse into one upstream call.
type Service struct {
	fetcher Fetcher
	store   storage.Store
	ttl     time.Duration
	sfg     singleflight.Group
	logger  zerolog.Logger
}

func NewService(fetcher Fetcher, store storage.Store, logger zerolog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
		ttl:     5 * time.Minute,
		logger:  logger,
	}
}

// Resolve runs the slug through the collection and product resolvers
// against fresh-enough snapshots. A miss on both is still a success; the
// caller renders the not-found state.
func (s *Service) Resolve(ctx context.Context, slug string) (*ResolvedCollection, error) {
	collections, err := s.collections(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}

	collection := ResolveCollection(slug, collections)
	return &ResolvedCollection{
		Collection: collection,
		Products:   ResolveProducts(slug, collection, products),
	}, nil
}

func (s *Service) collections(ctx context.Context) ([]models.Collection, error) {
	v, err, _ := s.sfg.Do(collectionsKey, func() (interface{}, error) {
		var cached []models.Collection
		if ok := s.fromCache(ctx, collectionsKey, &cached); ok {
			return cached, nil
		}
		fresh, err := s.fetcher.Collections(ctx)
		if err != nil {
			return nil, err
		}
		s.toCache(ctx, collectionsKey, fresh)
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Collection), nil
}

func (s *Service) products(ctx context.Context) ([]models.Product, error) {
	v, err, _ := s.sfg.Do(productsKey, func() (interface{}, error) {
		var cached []models.Product
		if ok := s.fromCache(ctx, productsKey, &cached); ok {
			return cached, nil
		}
		fresh, err := s.fetcher.Products(ctx)
		if err != nil {
			return nil, err
		}
		s.toCache(ctx, productsKey, fresh)
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Product), nil
}

func (s *Service) fromCache(ctx context.Context, key string, out interface{}) bool {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().Err(err).Str("key", key).Msg("Catalog cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Corrupt catalog cache entry")
		return false
	}
	return true
}

func (s *Service) toCache(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Catalog cache marshal failed")
		return
	}
	if err := s.store.SetTTL(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Catalog cache write failed")
	}
}
