package storage

const (
	// BackendBadger 本地 BadgerDB
	BackendBadger = "badger"
	// BackendRedis 共享 Redis
	BackendRedis = "redis"

	defaultBackend = BackendBadger
)
