package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

type AuthConfig struct {
	JWTSecret          string `yaml:"jwt_secret"`
	SessionTokenTTLStr string `yaml:"session_token_ttl"`
	ResetTokenTTLStr   string `yaml:"reset_token_ttl"`
	OTPTTLStr          string `yaml:"otp_ttl"`

	SessionTokenTTL time.Duration `yaml:"-"`
	ResetTokenTTL   time.Duration `yaml:"-"`
	OTPTTL          time.Duration `yaml:"-"`
}

func parseTTL(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		panic("invalid duration " + s + ": " + err.Error())
	}
	return d
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email EmailConfig `yaml:"email"`
	Auth  AuthConfig  `yaml:"auth"`
}

func LoadConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open " + path + ": " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse " + path + ": " + err.Error())
	}

	// env overrides for secrets, so the file can stay checked in
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	cfg.Auth.SessionTokenTTL = parseTTL(cfg.Auth.SessionTokenTTLStr, 15*time.Minute)
	cfg.Auth.ResetTokenTTL = parseTTL(cfg.Auth.ResetTokenTTLStr, 10*time.Minute)
	cfg.Auth.OTPTTL = parseTTL(cfg.Auth.OTPTTLStr, 10*time.Minute)

	// refusing to start without a signing secret; every token the process
	// issues would be forgeable otherwise
	if cfg.Auth.JWTSecret == "" {
		panic("auth.jwt_secret (or JWT_SECRET) is required")
	}
	return &cfg
}
