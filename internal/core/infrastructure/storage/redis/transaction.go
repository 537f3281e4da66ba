package redis

import (
	"context"
	"strings"

	"github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
)

var _ storage.Transaction = (*Transaction)(nil)

// Transaction 带本地写缓冲的 Redis 事务
//
// 读取优先返回本事务的缓冲写入，其余走 WATCH 读取。
type Transaction struct {
	ctx   context.Context
	store *Store
	conn  redisConn

	sets map[string][]byte   // 完整键 → 值
	dels map[string]struct{} // 完整键
}

func newTransaction(ctx context.Context, store *Store, conn redisConn) *Transaction {
	return &Transaction{
		ctx:   ctx,
		store: store,
		conn:  conn,
		sets:  make(map[string][]byte),
		dels:  make(map[string]struct{}),
	}
}

// Get 获取指定键的值，键不存在时返回nil值和nil错误
func (t *Transaction) Get(key []byte) ([]byte, error) {
	full := t.store.fullKey(key)
	if v, ok := t.sets[full]; ok {
		return append([]byte(nil), v...), nil
	}
	if _, ok := t.dels[full]; ok {
		return nil, nil
	}
	return t.conn.WatchGet(t.ctx, full)
}

// Set 设置键值对
func (t *Transaction) Set(key, value []byte) error {
	full := t.store.fullKey(key)
	delete(t.dels, full)
	t.sets[full] = append([]byte(nil), value...)
	return nil
}

// Delete 删除指定键的值
func (t *Transaction) Delete(key []byte) error {
	full := t.store.fullKey(key)
	delete(t.sets, full)
	t.dels[full] = struct{}{}
	return nil
}

// Exists 检查键是否存在
func (t *Transaction) Exists(key []byte) (bool, error) {
	v, err := t.Get(key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// PrefixScan 按前缀扫描，合并本事务的缓冲写入
func (t *Transaction) PrefixScan(prefix []byte) (map[string][]byte, error) {
	fullPrefix := t.store.fullKey(prefix)
	m, err := t.conn.WatchScan(t.ctx, fullPrefix)
	if err != nil {
		return nil, err
	}
	for k := range t.dels {
		delete(m, k)
	}
	for k, v := range t.sets {
		if strings.HasPrefix(k, fullPrefix) {
			m[k] = v
		}
	}
	return t.store.stripPrefix(m), nil
}

func (t *Transaction) dirty() bool {
	return len(t.sets) > 0 || len(t.dels) > 0
}

func (t *Transaction) deletedKeys() []string {
	keys := make([]string, 0, len(t.dels))
	for k := range t.dels {
		keys = append(keys, k)
	}
	return keys
}
