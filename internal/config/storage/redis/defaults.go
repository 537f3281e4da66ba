package redis

import "time"

// Redis存储默认配置值
const (
	defaultAddr      = "127.0.0.1:6379"
	defaultDB        = 0
	defaultKeyPrefix = "tokenfactory:"

	defaultDialTimeout = 5 * time.Second
)
