// Package config provides configuration management for the tracker service.
package config

// ConfigData represents the complete configuration
type ConfigData struct {
	Feed     FeedData     `yaml:"feed"`
	REST     RESTData     `yaml:"rest"`
	Geocoder GeocoderData `yaml:"geocoder"`
}

// FeedData holds trajectory feed retrieval configuration
type FeedData struct {
	URL            string `yaml:"url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// RESTData holds REST server configuration
type RESTData struct {
	ListenAddr string `yaml:"listen_addr,omitempty"`
	Port       int    `yaml:"port,omitempty"`
}

// GeocoderData holds reverse-geocoding configuration
type GeocoderData struct {
	BaseURL        string `yaml:"base_url,omitempty"`
	UserAgent      string `yaml:"user_agent,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
	Disabled       bool   `yaml:"disabled,omitempty"`
}

// ConfigProvider defines the interface for configuration sources
type ConfigProvider interface {
	LoadConfig() (*ConfigData, error)
}
