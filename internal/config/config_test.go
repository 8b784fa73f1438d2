package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DECK_TEST_DIR", "/var/deck")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "session.db"), ExpandPath("~/session.db"))
	assert.Equal(t, "/var/deck/out", ExpandPath("$DECK_TEST_DIR/out"))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DECK_DOTENV_PROBE=loaded\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("DECK_DOTENV_PROBE") })

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "loaded", os.Getenv("DECK_DOTENV_PROBE"))
}

func TestLoadAPIDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	Defaults(viper.GetViper())

	api, err := LoadAPI()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:4000", api.BaseURL)
	assert.Positive(t, api.Timeout)

	viper.Set("api.base_url", "")
	_, err = LoadAPI()
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestLoadS3Config(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := LoadS3Config()
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	viper.Set("export.s3.bucket", "finance")
	viper.Set("export.s3.path_style", true)
	cfg, err := LoadS3Config()
	require.NoError(t, err)
	assert.Equal(t, "finance", cfg.Bucket)
	assert.True(t, cfg.PathStyle)
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	for _, key := range []string{"GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN", "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_SPREADSHEET_ID"} {
		t.Setenv(key, "")
	}

	_, err := LoadSheetsConfig()
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	viper.Set("export.sheets.client_id", "id")
	viper.Set("export.sheets.client_secret", "secret")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "refresh")

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, "refresh", cfg.RefreshToken)
	assert.Equal(t, "Finance Export", cfg.SpreadsheetName)
}
