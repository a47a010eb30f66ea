package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"atelier/internal/models"
	"atelier/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	mu              sync.Mutex
	collectionCalls int
	productCalls    int
	err             error
}

func (m *mockFetcher) Collections(context.Context) ([]models.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collectionCalls++
	if m.err != nil {
		return nil, m.err
	}
	return collections, nil
}

func (m *mockFetcher) Products(context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.productCalls++
	if m.err != nil {
		return nil, m.err
	}
	return products, nil
}

func TestServiceResolve(t *testing.T) {
	fetcher := &mockFetcher{}
	svc := NewService(fetcher, storage.NewMemoryStore(), zerolog.Nop())

	resolved, err := svc.Resolve(context.Background(), "ternos-formais")
	require.NoError(t, err)
	require.NotNil(t, resolved.Collection)
	assert.Equal(t, "Formal Suits", resolved.Collection.NameEN)
	assert.Len(t, resolved.Products, 2)
}

func TestServiceResolveMissIsNotAnError(t *testing.T) {
	fetcher := &mockFetcher{}
	svc := NewService(fetcher, storage.NewMemoryStore(), zerolog.Nop())

	resolved, err := svc.Resolve(context.Background(), "nao-existe")
	require.NoError(t, err)
	assert.Nil(t, resolved.Collection)
	assert.Empty(t, resolved.Products)
}

func TestServiceCachesSnapshots(t *testing.T) {
	fetcher := &mockFetcher{}
	svc := NewService(fetcher, storage.NewMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "linho")
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, "ternos-formais")
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.collectionCalls, "second resolve must hit the cache")
	assert.Equal(t, 1, fetcher.productCalls)
}

func TestServicePropagatesFetchErrors(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("upstream down")}
	svc := NewService(fetcher, storage.NewMemoryStore(), zerolog.Nop())

	_, err := svc.Resolve(context.Background(), "linho")
	assert.Error(t, err)
}
