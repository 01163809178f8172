package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	ApiServer ServerConfigs
	Database  DatabaseConfigs
	Redis     RedisConfigs
	Auth      AuthConfigs
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string
}

type AuthConfigs struct {
	Issuer   string
	Audience string

	// SigningKeyFile points to a PEM-encoded RSA private key. The key is
	// loaded once at process start and never changes per request.
	SigningKeyFile string

	AccessToken  TokenConfigs
	RefreshToken TokenConfigs
	Lockout      LockoutConfigs

	Google OAuth2Config
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type LockoutConfigs struct {
	MaxAttempts int64
	Window      time.Duration
}

type OAuth2Config struct {
	Name     string
	Issuer   string
	ClientID string
}
