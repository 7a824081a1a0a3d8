package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
app:
  service_name: gateway-test
log:
  level: debug
  format_json: true
http_server:
  port: 8080
  base_path: /v1
  timeout:
    request: 3s
kafka:
  brokers:
    - broker-1:9093
    - broker-2:9093
  topic: loan-applications
  publish_timeout: 2s
  tls:
    ca_file: /tmp/ca.crt
metrics:
  enabled: true
  port: 9100
`

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	return path
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "gateway-test", cfg.App.ServiceName)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Logger.FormatJSON)

	assert.Equal(t, uint16(8080), cfg.HTTPServer.Port)
	assert.Equal(t, "/v1", cfg.HTTPServer.BasePath)
	assert.Equal(t, 3*time.Second, cfg.HTTPServer.Timeout.Request)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.Timeout.Read)

	assert.Equal(t, []string{"broker-1:9093", "broker-2:9093"}, cfg.Kafka.Brokers)
	assert.Equal(t, "loan-applications", cfg.Kafka.Topic)
	assert.Equal(t, 2*time.Second, cfg.Kafka.PublishTimeout)
	assert.True(t, cfg.Kafka.TLSEnabled())
	assert.Equal(t, "/tmp/ca.crt", cfg.Kafka.TLS.CAFile)
	assert.Equal(t, "/etc/kafka/secrets/user.key", cfg.Kafka.TLS.KeyFile)

	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, uint16(9100), cfg.Metrics.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("KAFKA_TOPIC", "from-env")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "a:9092,b:9092")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Kafka.Topic)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "kafka:9093")
	t.Setenv("KAFKA_TOPIC", "applications")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka:9093"}, cfg.Kafka.Brokers)
	assert.Equal(t, "applications", cfg.Kafka.Topic)
	assert.Equal(t, 10*time.Second, cfg.Kafka.PublishTimeout)
	assert.Equal(t, ProtocolSSL, cfg.Kafka.SecurityProtocol)
	assert.Equal(t, "/etc/kafka/secrets/user.crt", cfg.Kafka.TLS.CertFile)
	assert.Equal(t, "/etc/kafka/ca/ca.crt", cfg.Kafka.TLS.CAFile)
	assert.Equal(t, "/etc/kafka/secrets/user.password", cfg.Kafka.TLS.PasswordFile())

	assert.Equal(t, "/api", cfg.HTTPServer.BasePath)
	assert.False(t, cfg.HTTPServer.CORS.Disabled)
	assert.Empty(t, cfg.HTTPServer.CORS.AllowOrigins)
	assert.Equal(t, []string{"*"}, cfg.HTTPServer.CORS.AllowHeaders)
	assert.Equal(t,
		[]string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		cfg.HTTPServer.CORS.AllowMethods,
	)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadPlainKey(t *testing.T) {
	const base = `
kafka:
  brokers: [kafka:9093]
  topic: applications
  tls:
`

	t.Run("empty password file is defaulted", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, base+"    key_password_file: \"\"\n"))
		require.NoError(t, err)

		assert.Equal(t, "/etc/kafka/secrets/user.password", cfg.Kafka.TLS.PasswordFile())
	})

	t.Run("plain key from file", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, base+"    plain_key: true\n"))
		require.NoError(t, err)

		assert.True(t, cfg.Kafka.TLS.PlainKey)
		assert.Empty(t, cfg.Kafka.TLS.PasswordFile())
	})

	t.Run("plain key from env", func(t *testing.T) {
		t.Setenv("KAFKA_TLS_PLAIN_KEY", "true")

		cfg, err := Load(writeConfig(t, base+"    ca_file: /tmp/ca.crt\n"))
		require.NoError(t, err)

		assert.Empty(t, cfg.Kafka.TLS.PasswordFile())
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, ErrConfigFileDoesNotExist)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Kafka: Kafka{
			Brokers:          []string{"kafka:9093"},
			Topic:            "applications",
			SecurityProtocol: "ssl",
			PublishTimeout:   time.Second,
		}}
	}

	tests := []struct {
		name   string
		modify func(c *Config)
		want   []error
	}{
		{name: "valid", modify: func(*Config) {}},
		{
			name:   "plaintext",
			modify: func(c *Config) { c.Kafka.SecurityProtocol = ProtocolPlaintext },
		},
		{
			name:   "no brokers and topic",
			modify: func(c *Config) { c.Kafka.Brokers, c.Kafka.Topic = nil, "" },
			want:   []error{ErrNoBrokers, ErrNoTopic},
		},
		{
			name:   "unknown protocol",
			modify: func(c *Config) { c.Kafka.SecurityProtocol = "SASL_SSL" },
			want:   []error{ErrUnknownProtocol},
		},
		{
			name:   "zero publish timeout",
			modify: func(c *Config) { c.Kafka.PublishTimeout = 0 },
			want:   []error{ErrInvalidPublishTimeout},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)

			err := cfg.Validate()
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}

			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestTLSEnabled(t *testing.T) {
	assert.True(t, Kafka{SecurityProtocol: "SSL"}.TLSEnabled())
	assert.True(t, Kafka{SecurityProtocol: "ssl"}.TLSEnabled())
	assert.False(t, Kafka{SecurityProtocol: ProtocolPlaintext}.TLSEnabled())
}
