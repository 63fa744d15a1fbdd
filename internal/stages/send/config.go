// internal/stages/send/config.go
package send

type Config struct {
	CaptureScreenshots bool
	PlatformURL        string
	LogIndex           string
}

func LoadConfig() *Config {
	return &Config{
		CaptureScreenshots: true,
		LogIndex:           "outreach-send-logs",
	}
}
