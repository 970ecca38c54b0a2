package config

type SheetsConfig struct {
	CredentialsFile  string
	Endpoint         string
	ValueInputOption string
	// RateLimit caps Sheets API calls per second; zero disables pacing
	RateLimit float64
	RateBurst int
}

func NewSheetsConfig() *SheetsConfig {
	return &SheetsConfig{
		CredentialsFile:  getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		Endpoint:         getEnv("SHEETS_ENDPOINT", ""),
		ValueInputOption: getEnv("SHEETS_VALUE_INPUT_OPTION", "USER_ENTERED"),
		RateLimit:        getFloatEnv("SHEETS_RATE_LIMIT", 0),
		RateBurst:        getIntEnv("SHEETS_RATE_BURST", 1),
	}
}
