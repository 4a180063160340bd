package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiry())
	assert.Equal(t, 10*time.Minute, cfg.Reset.TokenTTL())
	assert.Equal(t, "http://localhost:5173", cfg.Reset.FrontendURL)
	assert.Equal(t, MailTransportLog, cfg.Mail.Transport)
	assert.False(t, cfg.Redis.ThrottleEnabled())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_ALGORITHM", "hs512")
	t.Setenv("JWT_EXPIRY_MINUTES", "45")
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("FRONTEND_URL", "https://app.example.com/")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("FORGOT_PASSWORD_LIMIT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.JWT.Algorithm)
	assert.Equal(t, 45*time.Minute, cfg.JWT.Expiry())
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "https://app.example.com", cfg.Reset.FrontendURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Redis.ThrottleEnabled())
	assert.Equal(t, 15*time.Minute, cfg.Redis.ForgotPasswordWindow())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: DriverMemory},
			JWT:      JWTConfig{Secret: "s", Algorithm: "HS256", ExpiryMinutes: 15},
			Mail:     MailConfig{Transport: MailTransportLog},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: true},
		{name: "asymmetric algorithm", mutate: func(c *Config) { c.JWT.Algorithm = "RS256" }, wantErr: true},
		{name: "zero expiry", mutate: func(c *Config) { c.JWT.ExpiryMinutes = 0 }, wantErr: true},
		{name: "postgres without host", mutate: func(c *Config) { c.Database.Driver = DriverPostgres }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "smtp without host", mutate: func(c *Config) { c.Mail.Transport = MailTransportSMTP }, wantErr: true},
		{name: "kafka without brokers", mutate: func(c *Config) { c.Mail.Transport = MailTransportKafka }, wantErr: true},
		{
			name: "kafka with brokers",
			mutate: func(c *Config) {
				c.Mail.Transport = MailTransportKafka
				c.Kafka = KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "t"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "auth", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=auth sslmode=disable", c.DSN())
}
