package infrastructure

import (
	"fmt"

	"github.com/job-scalper/internal/config"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func LoadConfigFromEnv() DBConfig {
	return DBConfig{
		Host:     config.GetEnv("DB_HOST", "localhost"),
		Port:     config.GetEnv("DB_PORT", "5432"),
		User:     config.GetEnv("DB_USER", "postgres"),
		Password: config.GetEnv("DB_PASSWORD", ""),
		Name:     config.GetEnv("DB_NAME", "jobscalper"),
		SSLMode:  config.GetEnv("DB_SSLMODE", "disable"),
	}
}

func (c DBConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s", c.Host, c.Port, c.User, c.Name, c.SSLMode)
	if c.Password != "" {
		dsn += " password=" + c.Password
	}
	return dsn
}
