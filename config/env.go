package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadENV reads a .env file into the process environment. A missing file is
// not an error; real environment variables always win in deployment.
func LoadENV() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}
