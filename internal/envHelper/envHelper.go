package envHelper

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnv loads a .env file from the working directory if there is one.
// Variables already set in the process environment win.
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		// Not fatal, just log the error and continue
		zap.S().Debugw("couldn't load .env file", "error", err)
	}
}

// GetEnvVariable returns the value of key, or fallback when it is unset or empty.
func GetEnvVariable(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
