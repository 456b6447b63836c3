// Package config loads process configuration from environment variables
// into tagged structs.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for parsing:
//
//	if err := config.LoadEnv(); err != nil {
//		return err
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Nested structs are parsed recursively, so packages such as pkg/redis and
// pkg/httpserver expose their own Config types which the binary embeds.
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile and can be matched with
// errors.Is.
package config
