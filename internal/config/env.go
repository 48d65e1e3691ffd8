package config

import (
	"errors"

	"github.com/joho/godotenv"
)

// LoadEnvFiles loads the given .env files (".env" when none are given) into
// the process environment. Variables already set are not overridden.
func LoadEnvFiles(files ...string) error {
	return godotenv.Load(files...)
}

// RequireMongo returns an error when no MongoDB connection string is configured.
func (c Config) RequireMongo() error {
	if c.MongoConnString == "" {
		return errors.New("MONGO_CONNECTION_STRING environment variable not set")
	}
	return nil
}

// RequireSQL returns an error when no SQL Server connection string is configured.
func (c Config) RequireSQL() error {
	if c.SQLConnString == "" {
		return errors.New("SQL_CONNECTION_STRING environment variable not set")
	}
	return nil
}
