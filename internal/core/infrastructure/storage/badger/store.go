// Package badger 提供基于BadgerDB的存储实现
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	badgerdb "github.com/dgraph-io/badger/v3"
	badgerconfig "github.com/weisyn/tokenfactory/internal/config/storage/badger"
	logmodule "github.com/weisyn/tokenfactory/internal/core/infrastructure/log"
	log "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/log"
	interfaces "github.com/weisyn/tokenfactory/pkg/interfaces/infrastructure/storage"
)

var _ interfaces.Store = (*Store)(nil)

// errStoreClosing 关闭过程中拒绝新的读写
var errStoreClosing = errors.New("badger store is closing")

// Store 基于BadgerDB的键值存储
type Store struct {
	db     *badgerdb.DB
	config *badgerconfig.Config
	logger log.Logger

	// Close 时阻断新写入并等待 in-flight 事务结束
	closing int32
	writeWg sync.WaitGroup
}

// New 打开BadgerDB；配置为内存模式时不落盘
func New(config *badgerconfig.Config, logger log.Logger) (*Store, error) {
	if logger == nil {
		logger = logmodule.NewNop()
	}

	var opts badgerdb.Options
	if config.IsInMemory() {
		logger.Info("初始化BadgerDB存储（内存模式）")
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		dataDir := config.GetPath()
		logger.Infof("初始化BadgerDB存储，数据目录: %s", dataDir)
		if err := os.MkdirAll(dataDir, 0700); err != nil {
			return nil, fmt.Errorf("无法创建BadgerDB数据目录: %w", err)
		}
		opts = badgerdb.DefaultOptions(dataDir)
		opts.SyncWrites = config.IsSyncWritesEnabled()
		opts.ValueLogFileSize = 64 << 20
	}
	if size := config.GetMemTableSize(); size > 0 {
		opts.MemTableSize = size
	}
	opts.BlockCacheSize = 16 << 20
	opts.IndexCacheSize = 16 << 20
	opts.NumMemtables = 2
	opts.Logger = newBadgerLogger(logger)

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("打开BadgerDB失败: %w", err)
	}

	return &Store{
		db:     db,
		config: config,
		logger: logger,
	}, nil
}

// Close 关闭存储并释放资源，重复调用无副作用
func (s *Store) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closing, 0, 1) {
		return nil
	}

	s.writeWg.Wait()

	if err := s.db.Close(); err != nil {
		s.logger.Errorf("关闭BadgerDB失败: %v", err)
		return fmt.Errorf("关闭BadgerDB失败: %w", err)
	}
	s.logger.Info("BadgerDB存储已关闭")
	return nil
}

func (s *Store) beginWrite() (func(), error) {
	if atomic.LoadInt32(&s.closing) == 1 {
		return nil, errStoreClosing
	}
	s.writeWg.Add(1)
	// double-check，避免在 Add 之后进入 closing
	if atomic.LoadInt32(&s.closing) == 1 {
		s.writeWg.Done()
		return nil, errStoreClosing
	}
	return s.writeWg.Done, nil
}

// Get 获取指定键的值，键不存在时返回nil值和nil错误
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var valCopy []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badgerdb.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		valCopy, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("badger读取失败: %w", err)
	}
	return valCopy, nil
}

// Set 设置键值对
func (s *Store) Set(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done, err := s.beginWrite()
	if err != nil {
		return err
	}
	defer done()

	if err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(key, value)
	}); err != nil {
		return fmt.Errorf("badger写入失败: %w", err)
	}
	return nil
}

// PrefixScan 按前缀扫描键值对
func (s *Store) PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var result map[string][]byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		var err error
		result, err = scanPrefix(txn, prefix)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("badger前缀扫描失败: %w", err)
	}
	return result, nil
}

// scanPrefix 在给定事务内扫描；读写事务的迭代器包含未提交的写入
func scanPrefix(txn *badgerdb.Txn, prefix []byte) (map[string][]byte, error) {
	result := make(map[string][]byte)

	opts := badgerdb.DefaultIteratorOptions
	opts.PrefetchValues = true
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		key := item.KeyCopy(nil)
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		result[string(key)] = val
	}
	return result, nil
}

// RunInTransaction 在事务中执行操作
//
// fn 返回错误时丢弃全部写入并原样返回该错误；否则提交。
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx interfaces.Transaction) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done, err := s.beginWrite()
	if err != nil {
		return err
	}
	defer done()

	tx := &Transaction{
		txn:   s.db.NewTransaction(true),
		state: int32(TxActive),
	}
	defer tx.Discard()

	if err := fn(tx); err != nil {
		return err
	}

	// 提交前再检查一次，调用方超时后不再落盘
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("事务提交失败: %w", err)
	}
	return nil
}

// badgerLogger 实现BadgerDB的日志接口
type badgerLogger struct {
	logger log.Logger
}

func newBadgerLogger(logger log.Logger) *badgerLogger {
	return &badgerLogger{logger: logger}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf("[BadgerDB] "+format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf("[BadgerDB] "+format, args...)
}

// Infof BadgerDB 的 info 日志较多，降为 debug
func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debugf("[BadgerDB] "+format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf("[BadgerDB] "+format, args...)
}
