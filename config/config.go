package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config armazena todas as configurações do aplicativo GoTransfer.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Bootstrap
	WarehousesFile string // JSON com as configurações iniciais; vazio inicia sem armazéns
	StockFile      string // JSON com itens do estoque interno; vazio inicia sem seed

	// Store interno (PostgreSQL); vazio seleciona o store em memória
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis); vazio desabilita o rate limiting
	RedisAddr    string
	CacheTimeout time.Duration

	// APIs de Parceiros
	PartnerHTTPTimeout time.Duration

	// Segurança (JWT + credencial única do operador)
	JWTSecretKey    string
	TokenExpiry     time.Duration
	OperatorID      string
	OperatorKeyHash string // hash bcrypt da chave do operador

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Bootstrap
		WarehousesFile: getEnv("WAREHOUSES_FILE", ""),
		StockFile:      getEnv("STOCK_FILE", ""),

		// 3. Store interno (PostgreSQL, opcional)
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second, // 5s padrão

		// 4. Cache (Redis, opcional)
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		CacheTimeout: getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second, // 10s padrão

		// 5. APIs de Parceiros
		PartnerHTTPTimeout: getDurationEnv("PARTNER_HTTP_TIMEOUT_SEC", 10) * time.Second, // 10s padrão

		// 6. Segurança (JWT + operador)
		JWTSecretKey:    mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:     getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute, // 60 min padrão
		OperatorID:      mustGetEnv("OPERATOR_ID"),
		OperatorKeyHash: mustGetEnv("OPERATOR_KEY_HASH"),

		// 7. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute, // 1 min padrão
	}

	return cfg
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
