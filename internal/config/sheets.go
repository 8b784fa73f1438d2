package config

import (
	"os"

	"github.com/Veraticus/ledgerdeck/internal/export"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads the Google Sheets export configuration from Viper
// and environment variables. It follows this precedence:
// 1. Viper configuration (from config file or DECK_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig() (*export.SheetsConfig, error) {
	config := export.DefaultSheetsConfig()

	if v := viper.GetString("export.sheets.service_account_path"); v != "" {
		config.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("export.sheets.client_id"); v != "" {
		config.ClientID = v
	}
	if v := viper.GetString("export.sheets.client_secret"); v != "" {
		config.ClientSecret = v
	}
	if v := viper.GetString("export.sheets.refresh_token"); v != "" {
		config.RefreshToken = v
	}
	if v := viper.GetString("export.sheets.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetString("export.sheets.spreadsheet_name"); v != "" {
		config.SpreadsheetName = v
	}

	if config.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			config.ServiceAccountPath = ExpandPath(v)
		}
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if config.RefreshToken == "" {
		config.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadS3Config loads the S3 export configuration from Viper.
func LoadS3Config() (*export.S3Config, error) {
	config := export.S3Config{
		Bucket:    viper.GetString("export.s3.bucket"),
		Region:    viper.GetString("export.s3.region"),
		Endpoint:  viper.GetString("export.s3.endpoint"),
		Prefix:    viper.GetString("export.s3.prefix"),
		PathStyle: viper.GetBool("export.s3.path_style"),
	}
	if config.Bucket == "" {
		return nil, errMissing("export.s3.bucket")
	}
	return &config, nil
}
