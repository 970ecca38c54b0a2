package config

import "fmt"

type StoreBackend string

const (
	BackendSheets   StoreBackend = "sheets"
	BackendPostgres StoreBackend = "postgres"
	BackendSqlite   StoreBackend = "sqlite"
	BackendRedis    StoreBackend = "redis"
	BackendMemory   StoreBackend = "memory"
)

type StoreConfig struct {
	Backend StoreBackend
}

func NewStoreConfig() *StoreConfig {
	return &StoreConfig{
		Backend: StoreBackend(getEnv("STORE_BACKEND", string(BackendSheets))),
	}
}

func (c *StoreConfig) Validate() error {
	switch c.Backend {
	case BackendSheets, BackendPostgres, BackendSqlite, BackendRedis, BackendMemory:
		return nil
	}
	return fmt.Errorf("unknown STORE_BACKEND %q", c.Backend)
}
