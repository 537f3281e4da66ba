package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	badgerconfig "github.com/weisyn/tokenfactory/internal/config/storage/badger"
	interfaces "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
)

// setupTestStore 创建内存模式的测试存储
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := badgerconfig.NewFromOptions(&badgerconfig.BadgerOptions{
		InMemory:     true,
		MemTableSize: 1 << 20,
	})
	store, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestStoreBasicOperations 测试基本读写
func TestStoreBasicOperations(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	val, err := store.Get(ctx, []byte("missing"))
	require.NoError(t, err)
	assert.Nil(t, val, "不存在的键应返回 nil")

	require.NoError(t, store.Set(ctx, []byte("config"), []byte(`{"owner":"A"}`)))
	val, err = store.Get(ctx, []byte("config"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"owner":"A"}`), val)
}

// TestStorePrefixScan 测试前缀扫描
func TestStorePrefixScan(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, []byte("denom_owner/factory/x/a"), []byte("A")))
	require.NoError(t, store.Set(ctx, []byte("denom_owner/factory/x/b"), []byte("B")))
	require.NoError(t, store.Set(ctx, []byte("config"), []byte("{}")))

	result, err := store.PrefixScan(ctx, []byte("denom_owner/"))
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, []byte("A"), result["denom_owner/factory/x/a"])
	assert.Equal(t, []byte("B"), result["denom_owner/factory/x/b"])
}

// TestRunInTransactionCommit 成功时提交
func TestRunInTransactionCommit(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.RunInTransaction(ctx, func(tx interfaces.Transaction) error {
		if err := tx.Set([]byte("k1"), []byte("v1")); err != nil {
			return err
		}
		// 事务内可读到未提交写入
		val, err := tx.Get([]byte("k1"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), val)

		scanned, err := tx.PrefixScan([]byte("k"))
		require.NoError(t, err)
		assert.Len(t, scanned, 1)
		return nil
	})
	require.NoError(t, err)

	val, err := store.Get(ctx, []byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), val)
}

// TestRunInTransactionRollback 返回错误时丢弃全部写入，错误原样返回
func TestRunInTransactionRollback(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	sentinel := errors.New("校验失败")

	err := store.RunInTransaction(ctx, func(tx interfaces.Transaction) error {
		require.NoError(t, tx.Set([]byte("k1"), []byte("v1")))
		return sentinel
	})
	assert.Same(t, sentinel, err)

	val, err := store.Get(ctx, []byte("k1"))
	require.NoError(t, err)
	assert.Nil(t, val, "回滚后不应留下任何写入")
}

// TestRunInTransactionCanceledContext 已取消的 context 不执行事务
func TestRunInTransactionCanceledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.RunInTransaction(ctx, func(tx interfaces.Transaction) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

// TestStoreClosed 关闭后拒绝写入
func TestStoreClosed(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "重复关闭应无副作用")

	err := store.Set(context.Background(), []byte("k"), []byte("v"))
	assert.ErrorIs(t, err, errStoreClosing)
}
