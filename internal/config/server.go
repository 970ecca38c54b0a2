package config

import "time"

type ServerConfig struct {
	Port         int
	ServiceName  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxBodyBytes int64
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:         getIntEnv("PORT", 8082),
		ServiceName:  getEnv("SERVICE_NAME", "static-ip-db"),
		ReadTimeout:  time.Duration(getIntEnv("READ_TIMEOUT_SEC", 15)) * time.Second,
		WriteTimeout: time.Duration(getIntEnv("WRITE_TIMEOUT_SEC", 15)) * time.Second,
		IdleTimeout:  time.Duration(getIntEnv("IDLE_TIMEOUT_SEC", 60)) * time.Second,
		MaxBodyBytes: int64(getIntEnv("MAX_BODY_BYTES", 1<<20)),
	}
}
