// Package config loads callscore configuration from config.yml, .env files
// and CALLSCORE_-prefixed environment variables using viper.
package config
