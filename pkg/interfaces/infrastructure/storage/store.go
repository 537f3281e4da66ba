// Package storage 定义键值存储接口
//
// 代币工厂的本地状态（配置、面额所有者登记）只通过这里的 get/set/list
// 契约访问，具体引擎（BadgerDB / Redis）在 internal/core/infrastructure/storage 下实现。
package storage

import "context"

// Store 键值存储
type Store interface {
	// Get 获取指定键的值
	// 如果键不存在，返回nil值和nil错误
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set 设置键值对，已存在时覆盖
	Set(ctx context.Context, key, value []byte) error

	// PrefixScan 按前缀扫描键值对
	// 返回map的键为键的字符串表示
	PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error)

	// RunInTransaction 在事务中执行操作
	// 如果fn返回错误，事务中的所有写入被丢弃，错误原样向上传递（可用 errors.Is/As 识别）
	// 如果fn成功执行，事务将被提交
	RunInTransaction(ctx context.Context, fn func(tx Transaction) error) error

	// Close 关闭存储
	Close() error
}

// Transaction 事务内的读写视图
//
// 事务内读取能看到本事务已写入但未提交的值。
type Transaction interface {
	// Get 如果键不存在，返回nil值和nil错误
	Get(key []byte) ([]byte, error)

	Set(key, value []byte) error

	// Delete 如果键不存在，不会返回错误
	Delete(key []byte) error

	Exists(key []byte) (bool, error)

	// PrefixScan 按前缀扫描，包含本事务未提交的写入
	PrefixScan(prefix []byte) (map[string][]byte, error)
}
