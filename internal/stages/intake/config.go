// internal/stages/intake/config.go
package intake

type Config struct {
	EventPageURL             string
	AllowPlaceholderFallback bool
	PlaceholderCount         int
}

func LoadConfig() *Config {
	return &Config{
		AllowPlaceholderFallback: true,
		PlaceholderCount:         5,
	}
}
