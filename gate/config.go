package gate

import "fmt"

const defaultBaseURL = "https://v2.aptner.com"

// Config holds the connection settings and credentials for the reservation
// service. Credentials are normally supplied through environment overrides
// so they never live in the config file.
type Config struct {
	BaseURL        string `json:"base_url"`
	ID             string `json:"id"`
	Password       string `json:"password"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.ID == "" || c.Password == "" {
		return fmt.Errorf("gate credentials are required (set gate.id and gate.password, or GP_GATE__ID / GP_GATE__PASSWORD)")
	}
	return nil
}
