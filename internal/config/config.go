// Package config reads the kiosk backend's environment: database and
// Redis coordinates, JWT_SECRET, CORS_ORIGIN and PORT. A .env file is
// honored when present so local setups need no exported variables.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present. Missing files are
// fine; deployed environments inject variables directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable, or the default when unset or
// empty.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an integer environment variable. Unset or malformed
// values fall back to the default; malformed ones are logged.
func GetIntEnv(key string, defaultVal int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("%s is not an integer, using %d: %v", key, defaultVal, err)
		return defaultVal
	}
	return i
}

// IsProduction reports whether ENV is set to production.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
