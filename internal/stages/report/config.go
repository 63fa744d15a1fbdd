// internal/stages/report/config.go
package report

type Config struct {
	FolderName string
}

func LoadConfig() *Config {
	return &Config{
		FolderName: "Summary_Reports",
	}
}
