package config

import (
	"log"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/piresc/cardsettle/internal/pkg/constants"
	"github.com/piresc/cardsettle/internal/pkg/models"
	"github.com/spf13/viper"
)

// env is the viper instance every lookup goes through
var env = newEnv()

func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "settlement-service")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9990)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 10)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 120)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NSQ config
	configs.NSQ.NSQDAddress = GetEnv("NSQD_ADDRESS", "localhost:4150")
	configs.NSQ.LookupdAddress = GetEnvAsSlice("NSQ_LOOKUPD_ADDRESSES", nil)
	configs.NSQ.PointsTopic = GetEnv("NSQ_POINTS_TOPIC", constants.TopicPointsAward)
	configs.NSQ.ReconcileTopic = GetEnv("NSQ_RECONCILE_TOPIC", constants.TopicSettlementReconcile)
	configs.NSQ.PointsChannel = GetEnv("NSQ_POINTS_CHANNEL", constants.ChannelSettlementService)

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 60)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "cardsettle")

	// API keys for internal routes
	configs.APIKey.Keys = map[string]string{
		"webhook-service":  GetEnv("WEBHOOK_SERVICE_API_KEY", ""),
		"operator-service": GetEnv("OPERATOR_SERVICE_API_KEY", ""),
	}

	// Webhook config
	configs.Webhook.Secret = GetEnv("WEBHOOK_SECRET", "")
	configs.Webhook.SignatureHeader = GetEnv("WEBHOOK_SIGNATURE_HEADER", "signature")

	// Chain config
	configs.Chain.RPCURL = GetEnv("CHAIN_RPC_URL", "")
	configs.Chain.ChainID = GetEnvAsInt64("CHAIN_ID", 8453)
	configs.Chain.SignerPrivateKey = GetEnv("CHAIN_SIGNER_PRIVATE_KEY", "")
	configs.Chain.TokenAddress = GetEnv("CHAIN_TOKEN_ADDRESS", "")
	configs.Chain.TokenSymbol = GetEnv("CHAIN_TOKEN_SYMBOL", "USDC")
	configs.Chain.TokenDecimals = GetEnvAsInt("CHAIN_TOKEN_DECIMALS", 6)
	configs.Chain.PointsContractAddress = GetEnv("CHAIN_POINTS_CONTRACT_ADDRESS", "")
	configs.Chain.TreasuryAddress = GetEnv("CHAIN_TREASURY_ADDRESS", "")
	configs.Chain.GasLimit = uint64(GetEnvAsInt64("CHAIN_GAS_LIMIT", 0))
	configs.Chain.ConfirmationTimeout = GetEnvAsInt("CHAIN_CONFIRMATION_TIMEOUT", 90)
	configs.Chain.ConfirmationPoll = GetEnvAsInt("CHAIN_CONFIRMATION_POLL_MS", 1500)
	configs.Chain.ReadRetries = GetEnvAsInt("CHAIN_READ_RETRIES", 2)

	// FX config
	configs.FX.BaseURL = GetEnv("FX_BASE_URL", "https://api.frankfurter.app")
	configs.FX.APIKey = GetEnv("FX_API_KEY", "")
	configs.FX.Timeout = GetEnvAsInt("FX_TIMEOUT", 3)
	configs.FX.CacheTTL = GetEnvAsInt("FX_CACHE_TTL", 300)
	configs.FX.QuoteAsset = GetEnv("FX_QUOTE_CURRENCY", "USD")

	// Settlement config
	configs.Settlement.PointsDivisor = GetEnvAsInt64("SETTLEMENT_POINTS_DIVISOR", 1000)
	configs.Settlement.ProgramCurrency = GetEnv("SETTLEMENT_PROGRAM_CURRENCY", "GBP")
	configs.Settlement.FiatDecimals = GetEnvAsInt("SETTLEMENT_FIAT_DECIMALS", 2)

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.LogsEnabled = GetEnvAsBool("NEW_RELIC_LOGS_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")
	configs.Logger.MaxSize = GetEnvAsInt64("LOG_MAX_SIZE", 100)
	configs.Logger.MaxAge = GetEnvAsInt("LOG_MAX_AGE", 7)
	configs.Logger.MaxBackups = GetEnvAsInt("LOG_MAX_BACKUPS", 3)
	configs.Logger.Compress = GetEnvAsBool("LOG_COMPRESS", true)
	configs.Logger.Type = GetEnv("LOG_TYPE", "stdout")

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := env.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	if GetEnv(key, "") == "" {
		return defaultValue
	}

	value, err := castInt64(key)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return int(value)
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	if GetEnv(key, "") == "" {
		return defaultValue
	}

	value, err := castInt64(key)
	if err != nil {
		log.Printf("Warning: Invalid int64 value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	switch strings.ToLower(valueStr) {
	case "1", "t", "true", "yes":
		return true
	case "0", "f", "false", "no":
		return false
	}

	log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
	return defaultValue
}

// GetEnvAsSlice splits a comma separated variable, dropping empty entries
func GetEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func castInt64(key string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(GetEnv(key, "")), 10, 64)
}
