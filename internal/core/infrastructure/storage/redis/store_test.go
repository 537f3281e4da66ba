package redis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	interfaces "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
)

// ==================== Mock redisClient ====================

// mockRedisClient 内存版 Redis，模拟 WATCH 版本检查与 MULTI/EXEC
type mockRedisClient struct {
	mu       sync.Mutex
	data     map[string][]byte
	versions map[string]int
	closed   bool

	// beforeExec 在 EXEC 前调用，用于模拟并发修改
	beforeExec func(m *mockRedisClient)
}

func newMockRedisClient() *mockRedisClient {
	return &mockRedisClient{
		data:     make(map[string][]byte),
		versions: make(map[string]int),
	}
}

func (m *mockRedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *mockRedisClient) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(key, value)
	return nil
}

func (m *mockRedisClient) setLocked(key string, value []byte) {
	m.data[key] = value
	m.versions[key]++
}

func (m *mockRedisClient) ScanPrefix(ctx context.Context, prefix string) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte)
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out, nil
}

func (m *mockRedisClient) Optimistic(ctx context.Context, fn func(conn redisConn) error) error {
	conn := &mockRedisConn{client: m, watched: make(map[string]int)}
	return fn(conn)
}

func (m *mockRedisClient) Ping(ctx context.Context) error { return nil }

func (m *mockRedisClient) Close() error {
	m.closed = true
	return nil
}

type mockRedisConn struct {
	client  *mockRedisClient
	watched map[string]int
}

func (c *mockRedisConn) WatchGet(ctx context.Context, key string) ([]byte, error) {
	c.client.mu.Lock()
	defer c.client.mu.Unlock()
	c.watched[key] = c.client.versions[key]
	return c.client.data[key], nil
}

func (c *mockRedisConn) WatchScan(ctx context.Context, prefix string) (map[string][]byte, error) {
	c.client.mu.Lock()
	defer c.client.mu.Unlock()
	out := make(map[string][]byte)
	for k, v := range c.client.data {
		if strings.HasPrefix(k, prefix) {
			c.watched[k] = c.client.versions[k]
			out[k] = v
		}
	}
	return out, nil
}

func (c *mockRedisConn) Exec(ctx context.Context, sets map[string][]byte, dels []string) error {
	if c.client.beforeExec != nil {
		c.client.beforeExec(c.client)
	}
	c.client.mu.Lock()
	defer c.client.mu.Unlock()
	for k, v := range c.watched {
		if c.client.versions[k] != v {
			return errConflict
		}
	}
	for k, v := range sets {
		c.client.setLocked(k, v)
	}
	for _, k := range dels {
		delete(c.client.data, k)
		c.client.versions[k]++
	}
	return nil
}

func newTestStore() (*Store, *mockRedisClient) {
	client := newMockRedisClient()
	return newStore(client, "tf:", nil), client
}

// ==================== 测试用例 ====================

// TestStoreKeyPrefix 所有键带命名空间前缀，扫描结果去掉前缀
func TestStoreKeyPrefix(t *testing.T) {
	store, client := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, []byte("denom_owner/factory/x/a"), []byte("A")))
	assert.Equal(t, []byte("A"), client.data["tf:denom_owner/factory/x/a"])

	val, err := store.Get(ctx, []byte("denom_owner/factory/x/a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("A"), val)

	missing, err := store.Get(ctx, []byte("nope"))
	require.NoError(t, err)
	assert.Nil(t, missing)

	scanned, err := store.PrefixScan(ctx, []byte("denom_owner/"))
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"denom_owner/factory/x/a": []byte("A")}, scanned)
}

// TestRunInTransactionBufferedWrites 缓冲写入在事务内可见，提交后落库
func TestRunInTransactionBufferedWrites(t *testing.T) {
	store, client := newTestStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, []byte("old"), []byte("1")))

	err := store.RunInTransaction(ctx, func(tx interfaces.Transaction) error {
		require.NoError(t, tx.Set([]byte("new"), []byte("2")))
		require.NoError(t, tx.Delete([]byte("old")))

		v, err := tx.Get([]byte("new"))
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), v)

		exists, err := tx.Exists([]byte("old"))
		require.NoError(t, err)
		assert.False(t, exists)

		// 提交前底层还没有写入
		assert.Nil(t, client.data["tf:new"])

		scanned, err := tx.PrefixScan([]byte(""))
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{"new": []byte("2")}, scanned)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("2"), client.data["tf:new"])
	_, ok := client.data["tf:old"]
	assert.False(t, ok)
}

// TestRunInTransactionRollback 返回错误时不写入任何数据，错误原样返回
func TestRunInTransactionRollback(t *testing.T) {
	store, client := newTestStore()
	sentinel := errors.New("未授权")

	err := store.RunInTransaction(context.Background(), func(tx interfaces.Transaction) error {
		require.NoError(t, tx.Set([]byte("k"), []byte("v")))
		return sentinel
	})
	assert.Same(t, sentinel, err)
	assert.Empty(t, client.data)
}

// TestRunInTransactionConflict 被读取的键在提交前被修改时返回冲突
func TestRunInTransactionConflict(t *testing.T) {
	store, client := newTestStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, []byte("config"), []byte(`{"owner":"A"}`)))

	client.beforeExec = func(m *mockRedisClient) {
		m.mu.Lock()
		m.setLocked("tf:config", []byte(`{"owner":"B"}`))
		m.mu.Unlock()
	}

	err := store.RunInTransaction(ctx, func(tx interfaces.Transaction) error {
		if _, err := tx.Get([]byte("config")); err != nil {
			return err
		}
		return tx.Set([]byte("denom_owner/x"), []byte("A"))
	})
	assert.ErrorIs(t, err, errConflict)
	_, ok := client.data["tf:denom_owner/x"]
	assert.False(t, ok, "冲突时不应写入")
}

// TestEscapeGlob 前缀中的通配字符需要转义
func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `tf:a\*b\?c\[d\]`, escapeGlob("tf:a*b?c[d]"))
	assert.Equal(t, "tf:denom_owner/", escapeGlob("tf:denom_owner/"))
}
