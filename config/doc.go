// Package config loads configuration structs from environment variables.
//
// Values are parsed with caarlos0/env based on `env` struct tags. Before the
// first parse, a .env file in the working directory is loaded once per
// process; a missing file is not an error, which keeps local development and
// containerized deployments on the same code path.
//
// # Usage
//
//	type appConfig struct {
//	    BaseURL string        `env:"PETSTORE_BASE_URL" envDefault:"https://petstore.example.com"`
//	    Timeout time.Duration `env:"PETSTORE_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg appConfig
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
//
// MustLoad panics instead of returning an error, for configuration the
// application cannot start without.
package config
