package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	ProtocolSSL       = "SSL"
	ProtocolPlaintext = "PLAINTEXT"
)

var (
	ErrNoBrokers              = errors.New("kafka brokers are not set")
	ErrNoTopic                = errors.New("kafka topic is not set")
	ErrUnknownProtocol        = errors.New("unknown kafka security protocol")
	ErrInvalidPublishTimeout  = errors.New("kafka publish timeout must be positive")
	ErrConfigFileDoesNotExist = errors.New("config file does not exist")
)

type Config struct {
	App        `yaml:"app"`
	Logger     `yaml:"log"`
	HTTPServer `yaml:"http_server"`
	Kafka      `yaml:"kafka"`
	Metrics    `yaml:"metrics"`
}

type App struct {
	ServiceName string `yaml:"service_name" env:"APP_SERVICE_NAME" env-default:"app-gateway"`
	Version     string `yaml:"version" env:"APP_VERSION" env-default:"dev"`
}

type Logger struct {
	Level      string   `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	FormatJSON bool     `yaml:"format_json" env:"LOG_FORMAT_JSON"`
	Rotation   Rotation `yaml:"rotation"`
}

type Rotation struct {
	File       string `yaml:"file" env:"LOG_FILE"`
	MaxSize    int    `yaml:"max_size" env:"LOG_MAX_SIZE" env-default:"100"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" env-default:"3"`
	MaxAge     int    `yaml:"max_age" env:"LOG_MAX_AGE" env-default:"28"`
}

type HTTPServer struct {
	Host     string  `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port     uint16  `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
	BasePath string  `yaml:"base_path" env:"HTTP_BASE_PATH" env-default:"/api"`
	Docs     bool    `yaml:"docs" env:"HTTP_DOCS"`
	Timeout  Timeout `yaml:"timeout"`
	CORS     CORS    `yaml:"cors"`
}

type Timeout struct {
	Request  time.Duration `yaml:"request" env:"HTTP_TIMEOUT_REQUEST" env-default:"15s"`
	Read     time.Duration `yaml:"read" env:"HTTP_TIMEOUT_READ" env-default:"5s"`
	Write    time.Duration `yaml:"write" env:"HTTP_TIMEOUT_WRITE" env-default:"20s"`
	Idle     time.Duration `yaml:"idle" env:"HTTP_TIMEOUT_IDLE" env-default:"60s"`
	Shutdown time.Duration `yaml:"shutdown" env:"HTTP_TIMEOUT_SHUTDOWN" env-default:"10s"`
}

// CORS is open to every origin unless AllowOrigins lists some.
type CORS struct {
	Disabled         bool          `yaml:"disabled" env:"HTTP_CORS_DISABLED"`
	AllowOrigins     []string      `yaml:"allow_origins" env:"HTTP_CORS_ALLOW_ORIGINS" env-separator:","`
	AllowMethods     []string      `yaml:"allow_methods" env:"HTTP_CORS_ALLOW_METHODS" env-separator:"," env-default:"GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS"`
	AllowHeaders     []string      `yaml:"allow_headers" env:"HTTP_CORS_ALLOW_HEADERS" env-separator:"," env-default:"*"`
	ExposeHeaders    []string      `yaml:"expose_headers" env:"HTTP_CORS_EXPOSE_HEADERS" env-separator:","`
	AllowCredentials bool          `yaml:"allow_credentials" env:"HTTP_CORS_ALLOW_CREDENTIALS"`
	MaxAge           time.Duration `yaml:"max_age" env:"HTTP_CORS_MAX_AGE" env-default:"12h"`
}

type Kafka struct {
	Brokers          []string      `yaml:"brokers" env:"KAFKA_BOOTSTRAP_SERVERS" env-separator:","`
	Topic            string        `yaml:"topic" env:"KAFKA_TOPIC"`
	ClientID         string        `yaml:"client_id" env:"KAFKA_CLIENT_ID" env-default:"app-gateway"`
	Version          string        `yaml:"version" env:"KAFKA_VERSION"`
	SecurityProtocol string        `yaml:"security_protocol" env:"KAFKA_SECURITY_PROTOCOL" env-default:"SSL"`
	PublishTimeout   time.Duration `yaml:"publish_timeout" env:"KAFKA_PUBLISH_TIMEOUT" env-default:"10s"`
	ConnectOnStart   bool          `yaml:"connect_on_start" env:"KAFKA_CONNECT_ON_START"`
	Retry            Retry         `yaml:"retry"`
	TLS              TLS           `yaml:"tls"`
}

// Retry tunes the client library's own resend of failed produce requests.
type Retry struct {
	Max     int           `yaml:"max" env:"KAFKA_RETRY_MAX" env-default:"3"`
	Backoff time.Duration `yaml:"backoff" env:"KAFKA_RETRY_BACKOFF" env-default:"100ms"`
}

// TLS holds the client material paths. The key is encrypted unless PlainKey
// is set; an empty KeyPasswordFile is defaulted again on load, so it cannot
// mark the key as unencrypted from yaml.
type TLS struct {
	KeyFile         string `yaml:"key_file" env:"KAFKA_TLS_KEY_FILE" env-default:"/etc/kafka/secrets/user.key"`
	CertFile        string `yaml:"cert_file" env:"KAFKA_TLS_CERT_FILE" env-default:"/etc/kafka/secrets/user.crt"`
	CAFile          string `yaml:"ca_file" env:"KAFKA_TLS_CA_FILE" env-default:"/etc/kafka/ca/ca.crt"`
	KeyPasswordFile string `yaml:"key_password_file" env:"KAFKA_TLS_KEY_PASSWORD_FILE" env-default:"/etc/kafka/secrets/user.password"`
	PlainKey        bool   `yaml:"plain_key" env:"KAFKA_TLS_PLAIN_KEY"`
}

// PasswordFile returns the passphrase file of the client key, or "" when the
// key is not encrypted.
func (t TLS) PasswordFile() string {
	if t.PlainKey {
		return ""
	}

	return t.KeyPasswordFile
}

// TLSEnabled reports whether brokers are reached over mutual TLS.
func (k Kafka) TLSEnabled() bool {
	return strings.EqualFold(k.SecurityProtocol, ProtocolSSL)
}

type Metrics struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Host    string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port    uint16 `yaml:"port" env:"METRICS_PORT" env-default:"9090"`
	Path    string `yaml:"path" env:"METRICS_PATH" env-default:"/metrics"`
}

func MustLoadConfig() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}

	return cfg
}

// LoadConfig reads the file named by -config or CONFIG_PATH, falling back to
// the environment alone when neither is set.
func LoadConfig() (*Config, error) {
	return Load(fetchConfigPath())
}

func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileDoesNotExist, path)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if len(c.Kafka.Brokers) == 0 {
		errs = append(errs, ErrNoBrokers)
	}

	if c.Kafka.Topic == "" {
		errs = append(errs, ErrNoTopic)
	}

	switch strings.ToUpper(c.Kafka.SecurityProtocol) {
	case ProtocolSSL, ProtocolPlaintext:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownProtocol, c.Kafka.SecurityProtocol))
	}

	if c.Kafka.PublishTimeout <= 0 {
		errs = append(errs, ErrInvalidPublishTimeout)
	}

	return errors.Join(errs...)
}

func MustPrintConfig(cfg *Config) {
	if err := PrintConfig(cfg); err != nil {
		panic(err)
	}
}

func PrintConfig(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	println(string(data))

	return nil
}

func fetchConfigPath() string {
	var result string

	flag.StringVar(&result, "config", "", "Path to config file")
	flag.Parse()

	if result == "" {
		result = os.Getenv("CONFIG_PATH")
	}

	return result
}
