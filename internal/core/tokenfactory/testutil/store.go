package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	badgerconfig "github.com/weisyn/tokenfactory/internal/config/storage/badger"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/storage/badger"
)

// NewStore 创建内存模式的 BadgerDB，测试结束时关闭
func NewStore(t testing.TB) *badger.Store {
	t.Helper()
	store, err := badger.New(badgerconfig.NewFromOptions(&badgerconfig.BadgerOptions{InMemory: true}), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}
