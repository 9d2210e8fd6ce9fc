package models

// Config represents application configuration
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	NSQ        NSQConfig
	JWT        JWTConfig
	APIKey     APIKeyConfig
	Webhook    WebhookConfig
	Chain      ChainConfig
	FX         FXConfig
	Settlement SettlementConfig
	NewRelic   NewRelicConfig
	Logger     LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NSQConfig contains NSQ daemon addresses and topic names
type NSQConfig struct {
	NSQDAddress    string
	LookupdAddress []string
	PointsTopic    string
	ReconcileTopic string
	PointsChannel  string
}

// JWTConfig contains operator token configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// APIKeyConfig holds the keys accepted on internal routes, keyed by caller service
type APIKeyConfig struct {
	Keys map[string]string
}

// WebhookConfig holds the card issuer webhook settings
type WebhookConfig struct {
	Secret          string
	SignatureHeader string
}

// ChainConfig describes the settlement chain and the platform signer
type ChainConfig struct {
	RPCURL                string
	ChainID               int64
	SignerPrivateKey      string
	TokenAddress          string
	TokenSymbol           string
	TokenDecimals         int
	PointsContractAddress string
	TreasuryAddress       string
	GasLimit              uint64
	ConfirmationTimeout   int // in seconds
	ConfirmationPoll      int // in milliseconds
	ReadRetries           int
}

// FXConfig configures the exchange-rate source and its cache
type FXConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    int // in seconds
	CacheTTL   int // in seconds
	QuoteAsset string
}

// SettlementConfig holds settlement business parameters
type SettlementConfig struct {
	PointsDivisor   int64
	ProgramCurrency string
	FiatDecimals    int
}

// NewRelicConfig contains APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int64
	MaxAge     int
	MaxBackups int
	Compress   bool
	Type       string
}
