// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig          `mapstructure:"app"`
	Server   ServerConfig       `mapstructure:"server"`
	Project  ProjectCredentials `mapstructure:"project"`
	Store    StoreConfig        `mapstructure:"store"`
	Database DatabaseConfig     `mapstructure:"database"`
	Form     FormConfig         `mapstructure:"form"`
	Logging  LoggingConfig      `mapstructure:"logging"`

	// EnvFile is the .env file the loader read, if any.
	EnvFile string `mapstructure:"-"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address           string `mapstructure:"address"`
	ReadHeaderTimeout int    `mapstructure:"read_header_timeout"` // milliseconds
	RequestTimeout    int    `mapstructure:"request_timeout"`     // milliseconds
	ShutdownTimeout   int    `mapstructure:"shutdown_timeout"`    // milliseconds
}

// ProjectCredentials identifies the hosted project the document store belongs
// to. Every field is required.
type ProjectCredentials struct {
	APIKey            string `mapstructure:"api_key"`
	AuthDomain        string `mapstructure:"auth_domain"`
	ProjectID         string `mapstructure:"project_id"`
	StorageBucket     string `mapstructure:"storage_bucket"`
	MessagingSenderID string `mapstructure:"messaging_sender_id"`
	AppID             string `mapstructure:"app_id"`
	MeasurementID     string `mapstructure:"measurement_id"`
}

// Missing returns the env variable names of the credentials that are empty.
func (p ProjectCredentials) Missing() []string {
	var missing []string
	for _, f := range []struct {
		env, val string
	}{
		{"API_KEY", p.APIKey},
		{"AUTH_DOMAIN", p.AuthDomain},
		{"PROJECT_ID", p.ProjectID},
		{"STORAGE_BUCKET", p.StorageBucket},
		{"MESSAGING_SENDER_ID", p.MessagingSenderID},
		{"APP_ID", p.AppID},
		{"MEASUREMENT_ID", p.MeasurementID},
	} {
		if f.val == "" {
			missing = append(missing, f.env)
		}
	}
	return missing
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Driver       string `mapstructure:"driver"` // memory | elasticsearch | redis | postgres
	Collection   string `mapstructure:"collection"`
	WriteTimeout int    `mapstructure:"write_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses   []string `mapstructure:"addresses"`
	URL         string   `mapstructure:"url"`
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	IndexPrefix string   `mapstructure:"index_prefix"`
	Refresh     string   `mapstructure:"refresh"` // "", "true", "false", "wait_for"
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// FormConfig holds the copy shown on the signup pages.
type FormConfig struct {
	Title                string `mapstructure:"title"`
	ConfirmationImageURL string `mapstructure:"confirmation_image_url"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
