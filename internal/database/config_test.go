package database

import "github.com/archetype-studio/archetype/config"

func testDatabaseConfig() *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "app",
		Password: "secret",
		DBName:   "archetype",
		SSLMode:  "disable",
	}
}
