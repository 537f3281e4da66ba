package badger

// BadgerDB存储默认配置值
const (
	defaultPath = "./data/badger"

	// 授权状态需要强一致性，默认同步写入
	defaultSyncWrites = true

	defaultMemTableSize = 64 << 20 // 64MB

	defaultInMemory = false
)
