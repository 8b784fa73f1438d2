package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. DECK_API_BASE_URL.
const EnvPrefix = "DECK"

// Defaults registers default values for every configuration key.
func Defaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://127.0.0.1:4000")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("session.path", "~/.local/share/deck/session.db")
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.s3.region", "us-east-1")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("mock.addr", "127.0.0.1:4000")
	v.SetDefault("tui.theme", "default")
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding the process environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// API holds the collaborator connection settings.
type API struct {
	BaseURL string
	Timeout time.Duration
}

// LoadAPI reads the collaborator settings from Viper.
func LoadAPI() (API, error) {
	api := API{
		BaseURL: viper.GetString("api.base_url"),
		Timeout: viper.GetDuration("api.timeout"),
	}
	if api.BaseURL == "" {
		return api, errMissing("api.base_url")
	}
	return api, nil
}

func errMissing(key string) error {
	return fmt.Errorf("%w: %s", common.ErrMissingConfig, key)
}
