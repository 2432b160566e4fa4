package config

import (
	"os"
	"strings"
)

const defaultPort = ":8080"

func BasePath() string {
	return strings.TrimSuffix(os.Getenv("APP_BASE_PATH"), "/")
}

// Port returns the listen address, accepting both "8080" and ":8080".
func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return defaultPort
	}
	if !strings.Contains(port, ":") {
		port = ":" + port
	}
	return port
}
