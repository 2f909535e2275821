package config

type DatabaseConfig interface {
	GetDatabaseURL() string
	UseInMemoryStore() bool
}

type Database struct{}

var _ DatabaseConfig = Database{}

func (Database) GetDatabaseURL() string {
	return GetEnv("DATABASE_URL", "")
}

// UseInMemoryStore is true when no DATABASE_URL is configured.
func (d Database) UseInMemoryStore() bool {
	return d.GetDatabaseURL() == ""
}
