package main

import (
	"os"
	"strconv"
	"time"

	"github.com/cowetaconnect/backend/config"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return d
}

func getInt64Env(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		panic(err)
	}

	return n
}

func (s *srv) loadConfig() config.Configs {
	return config.Configs{
		Env: getEnv("ENV", "local"),
		ApiServer: config.ServerConfigs{
			Host: getEnv("HOST", "localhost"),
			Port: getEnv("PORT", "8080"),
			Cert: getEnv("SERVER_CERT", ""),
			Key:  getEnv("SERVER_KEY", ""),
		},
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "cowetaconnect"),
			User:     getEnv("MYSQL_USER", "cowetaconnect"),
			Password: getEnv("MYSQL_PASSWORD", "cowetaconnect"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Auth: config.AuthConfigs{
			Issuer:         getEnv("AUTH_ISSUER", "cowetaconnect"),
			Audience:       getEnv("AUTH_AUDIENCE", "cowetaconnect"),
			SigningKeyFile: getEnv("AUTH_SIGNING_KEY_FILE", "signing_key.pem"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getDurationEnv("ACCESS_TOKEN_DURATION", 15*time.Minute),
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: getDurationEnv("REFRESH_TOKEN_DURATION", 7*24*time.Hour),
			},
			Lockout: config.LockoutConfigs{
				MaxAttempts: getInt64Env("LOGIN_LOCKOUT_MAX_ATTEMPTS", 5),
				Window:      getDurationEnv("LOGIN_LOCKOUT_WINDOW", 15*time.Minute),
			},
			Google: config.OAuth2Config{
				Name:     "google",
				Issuer:   getEnv("GOOGLE_OAUTH_ISSUER", "https://accounts.google.com"),
				ClientID: getEnv("GOOGLE_OAUTH_CLIENT_ID", ""),
			},
		},
	}
}
