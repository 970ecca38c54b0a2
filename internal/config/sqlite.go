package config

type SqliteConfig struct {
	Path string
}

func NewSqliteConfig() *SqliteConfig {
	return &SqliteConfig{
		Path: getEnv("SQLITE_PATH", "./static-ip.db"),
	}
}
