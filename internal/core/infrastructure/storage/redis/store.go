// Package redis 提供基于Redis的共享存储实现
//
// 多个实例共享同一个 Redis 时，事务使用 WATCH + MULTI/EXEC：
// 事务内读取的键在提交前被其他实例修改会返回冲突错误，写入全部丢弃。
package redis

import (
	"context"
	"fmt"
	"strings"
	"sync"

	redisconfig "github.com/weisyn/tokenfactory/internal/config/storage/redis"
	log "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/log"
	interfaces "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
)

var _ interfaces.Store = (*Store)(nil)

// Store Redis 键值存储
type Store struct {
	client    redisClient
	keyPrefix string
	logger    log.Logger

	// 同一进程内的事务串行执行
	mu sync.Mutex
}

// New 连接 Redis 并创建存储
func New(ctx context.Context, opts *redisconfig.RedisOptions, logger log.Logger) (*Store, error) {
	client, err := newGoRedisClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Infof("初始化Redis存储，地址: %s，键前缀: %s", opts.Addr, opts.KeyPrefix)
	}
	return newStore(client, opts.KeyPrefix, logger), nil
}

func newStore(client redisClient, keyPrefix string, logger log.Logger) *Store {
	return &Store{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

func (s *Store) fullKey(key []byte) string {
	return s.keyPrefix + string(key)
}

// stripPrefix 去掉命名空间前缀，返回调用方视角的键
func (s *Store) stripPrefix(m map[string][]byte) map[string][]byte {
	out := make(map[string][]byte, len(m))
	for k, v := range m {
		out[strings.TrimPrefix(k, s.keyPrefix)] = v
	}
	return out
}

// Get 获取指定键的值，键不存在时返回nil值和nil错误
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	val, err := s.client.Get(ctx, s.fullKey(key))
	if err != nil {
		return nil, fmt.Errorf("redis读取失败: %w", err)
	}
	return val, nil
}

// Set 设置键值对
func (s *Store) Set(ctx context.Context, key, value []byte) error {
	if err := s.client.Set(ctx, s.fullKey(key), value); err != nil {
		return fmt.Errorf("redis写入失败: %w", err)
	}
	return nil
}

// PrefixScan 按前缀扫描键值对
func (s *Store) PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error) {
	m, err := s.client.ScanPrefix(ctx, s.fullKey(prefix))
	if err != nil {
		return nil, fmt.Errorf("redis前缀扫描失败: %w", err)
	}
	return s.stripPrefix(m), nil
}

// RunInTransaction 在事务中执行操作
//
// 写入先缓冲在本地，fn 成功后以 MULTI/EXEC 一次提交；fn 返回错误时缓冲直接丢弃并原样返回该错误。
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx interfaces.Transaction) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var fnErr error
	err := s.client.Optimistic(ctx, func(conn redisConn) error {
		tx := newTransaction(ctx, s, conn)
		if fnErr = fn(tx); fnErr != nil {
			return fnErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !tx.dirty() {
			return nil
		}
		if err := conn.Exec(ctx, tx.sets, tx.deletedKeys()); err != nil {
			return fmt.Errorf("事务提交失败: %w", err)
		}
		return nil
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil && s.logger != nil {
		s.logger.Warnf("Redis事务失败: %v", err)
	}
	return err
}

// Close 关闭连接
func (s *Store) Close() error {
	return s.client.Close()
}
