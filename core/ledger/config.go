package ledger

// Config holds configuration for the external ledger service.
type Config struct {
	// BaseURL is the root URL of the ledger service (e.g. https://ledger.example.com).
	BaseURL string `mapstructure:"base_url" default:""`
	// APIToken is the token sent with every request.
	APIToken string `mapstructure:"api_token" default:""`
	// TimeoutSeconds bounds every lookup, connection setup included.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
