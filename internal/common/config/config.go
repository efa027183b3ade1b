// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	GenAI         GenAIConfig        `mapstructure:"genai"`
	Speech        SpeechConfig       `mapstructure:"speech"`
	Retrieval     RetrievalConfig    `mapstructure:"retrieval"`
	Escalation    EscalationConfig   `mapstructure:"escalation"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
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
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address    string `mapstructure:"address"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	HistoryTTL int    `mapstructure:"history_ttl"` // milliseconds, 0 = no expiry
}

// --- Specific Configuration Sections ---

// GenAIConfig holds settings for the generation/embedding service.
type GenAIConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	APIKey           string `mapstructure:"api_key"`
	GenerateTimeout  int    `mapstructure:"generate_timeout"`  // milliseconds
	EmbeddingTimeout int    `mapstructure:"embedding_timeout"` // milliseconds
	MaxRetries       int    `mapstructure:"max_retries"`
}

// SpeechConfig holds settings for the external ASR/TTS service.
type SpeechConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// RetrievalConfig holds settings for the loan-eligibility document answerer.
type RetrievalConfig struct {
	IndexName    string `mapstructure:"index_name"`
	DocumentPath string `mapstructure:"document_path"`
	TopK         int    `mapstructure:"top_k"`
	QueryTimeout int    `mapstructure:"query_timeout"` // milliseconds
}

// EscalationConfig holds the escalation policy and collaborator endpoints.
type EscalationConfig struct {
	EscalateGeneralInquiry bool   `mapstructure:"escalate_general_inquiry"`
	SinkURL                string `mapstructure:"sink_url"`
	SessionLookupURL       string `mapstructure:"session_lookup_url"`
	SinkTimeout            int    `mapstructure:"sink_timeout"`   // milliseconds
	LookupTimeout          int    `mapstructure:"lookup_timeout"` // milliseconds
}

// NotificationConfig holds settings for notifying customers about answered questions.
type NotificationConfig struct {
	Email struct {
		Enabled    bool   `mapstructure:"enabled"`
		FromEmail  string `mapstructure:"from_email"`
		AdminEmail string `mapstructure:"admin_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
