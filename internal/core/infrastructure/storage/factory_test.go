package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/tokenfactory/internal/config"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/tokenfactory/pkg/types"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateStoreBadgerInMemory(t *testing.T) {
	provider := config.NewProvider(&types.AppConfig{
		Storage: &types.UserStorageConfig{
			Backend:  strPtr("badger"),
			InMemory: boolPtr(true),
		},
	})

	store, err := CreateStore(context.Background(), ServiceInput{Provider: provider})
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*badger.Store)
	assert.True(t, ok)

	require.NoError(t, store.Set(context.Background(), []byte("k"), []byte("v")))
	val, err := store.Get(context.Background(), []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
}

func TestCreateStoreUnknownBackend(t *testing.T) {
	provider := config.NewProvider(&types.AppConfig{
		Storage: &types.UserStorageConfig{Backend: strPtr("sqlite")},
	})

	_, err := CreateStore(context.Background(), ServiceInput{Provider: provider})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}
