package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	redisconfig "github.com/weisyn/tokenfactory/internal/config/storage/redis"
)

// scanBatch 每次 SCAN 的建议数量
const scanBatch = 256

// redisClient Redis 客户端接口（包内私有，用于依赖注入和测试）
type redisClient interface {
	// Get 键不存在时返回 nil, nil
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	ScanPrefix(ctx context.Context, prefix string) (map[string][]byte, error)
	// Optimistic 在 WATCH 会话中执行 fn；被监视的键在 EXEC 前被修改时返回 errConflict
	Optimistic(ctx context.Context, fn func(conn redisConn) error) error
	Ping(ctx context.Context) error
	Close() error
}

// redisConn WATCH 会话内的读写
type redisConn interface {
	// WatchGet 先 WATCH 再读取，键不存在时返回 nil, nil
	WatchGet(ctx context.Context, key string) ([]byte, error)
	// WatchScan 扫描前缀并 WATCH 扫描到的键
	WatchScan(ctx context.Context, prefix string) (map[string][]byte, error)
	// Exec 以 MULTI/EXEC 原子提交缓冲的写入
	Exec(ctx context.Context, sets map[string][]byte, dels []string) error
}

var errConflict = errors.New("redis 事务冲突：被读取的键已被并发修改")

// goRedisClient 基于 go-redis 的实现
type goRedisClient struct {
	client *redis.Client
}

// newGoRedisClient 创建 go-redis 客户端并测试连接
func newGoRedisClient(ctx context.Context, opts *redisconfig.RedisOptions) (*goRedisClient, error) {
	if opts == nil || opts.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &goRedisClient{client: client}, nil
}

func (c *goRedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	return getBytes(ctx, c.client, key)
}

func (c *goRedisClient) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, key, value, 0).Err()
}

func (c *goRedisClient) ScanPrefix(ctx context.Context, prefix string) (map[string][]byte, error) {
	return scanPrefix(ctx, c.client, prefix, nil)
}

func (c *goRedisClient) Optimistic(ctx context.Context, fn func(conn redisConn) error) error {
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		return fn(&goRedisConn{tx: tx})
	})
	if errors.Is(err, redis.TxFailedErr) {
		return errConflict
	}
	return err
}

func (c *goRedisClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *goRedisClient) Close() error {
	return c.client.Close()
}

// goRedisConn 绑定在 WATCH 连接上的会话
type goRedisConn struct {
	tx *redis.Tx
}

func (c *goRedisConn) WatchGet(ctx context.Context, key string) ([]byte, error) {
	if err := c.tx.Watch(ctx, key).Err(); err != nil {
		return nil, err
	}
	return getBytes(ctx, c.tx, key)
}

func (c *goRedisConn) WatchScan(ctx context.Context, prefix string) (map[string][]byte, error) {
	return scanPrefix(ctx, c.tx, prefix, func(keys []string) error {
		return c.tx.Watch(ctx, keys...).Err()
	})
}

func (c *goRedisConn) Exec(ctx context.Context, sets map[string][]byte, dels []string) error {
	_, err := c.tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range sets {
			pipe.Set(ctx, k, v, 0)
		}
		if len(dels) > 0 {
			pipe.Del(ctx, dels...)
		}
		return nil
	})
	return err
}

// kvCmd *redis.Client 与 *redis.Tx 共有的读取命令
type kvCmd interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

// getBytes 读取单个键，redis.Nil 视为不存在
func getBytes(ctx context.Context, cmd kvCmd, key string) ([]byte, error) {
	val, err := cmd.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// scanPrefix SCAN MATCH prefix* 后批量 MGET；beforeRead 用于在读取前 WATCH
func scanPrefix(ctx context.Context, cmd kvCmd, prefix string, beforeRead func([]string) error) (map[string][]byte, error) {
	result := make(map[string][]byte)
	var cursor uint64
	for {
		keys, next, err := cmd.Scan(ctx, cursor, escapeGlob(prefix)+"*", scanBatch).Result()
		if err != nil {
			return nil, err
		}
		if len(keys) > 0 {
			if beforeRead != nil {
				if err := beforeRead(keys); err != nil {
					return nil, err
				}
			}
			vals, err := cmd.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, err
			}
			for i, v := range vals {
				// 扫描与读取之间被删除的键返回 nil
				if s, ok := v.(string); ok {
					result[keys[i]] = []byte(s)
				}
			}
		}
		cursor = next
		if cursor == 0 {
			return result, nil
		}
	}
}

// escapeGlob 转义 MATCH 模式中的通配字符
func escapeGlob(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
