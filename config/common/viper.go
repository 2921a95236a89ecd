package common

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/viper"
)

type Config struct {
	Viper *viper.Viper
}

func NewViper() *Config {
	config := viper.New()
	setDefaults(config)
	config.SetConfigFile(".env")
	config.SetConfigType("env")
	config.AutomaticEnv()

	log.Trace("Checking file .env ....")
	if _, err := os.Stat(".env"); err == nil {
		if err := config.ReadInConfig(); err != nil {
			panic("failed read config")
		}
	}
	return &Config{Viper: config}
}

// NewConfig wraps an existing viper instance, filling in the defaults.
func NewConfig(config *viper.Viper) *Config {
	setDefaults(config)
	return &Config{Viper: config}
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("APP_NAME", "campus-chat")
	config.SetDefault("APP_PORT", "7720")
	config.SetDefault("APP_CORS_ORIGINS", "http://localhost:8080")
	config.SetDefault("LOG_LEVEL", "info")
	config.SetDefault("LOG_DIR", "logs")
	config.SetDefault("STORE_DRIVER", "memory")
	config.SetDefault("JSON_STORE_PATH", "data/store.json")
	config.SetDefault("DB_PORT", "5432")
	config.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	config.SetDefault("MONGO_DATABASE", "campus_chat")
	config.SetDefault("JWT_SECRET", "campus-chat-secret-key-618")
	config.SetDefault("JWT_TTL", "24h")
	config.SetDefault("SESSION_COOKIE_NAME", "campus_session")
	config.SetDefault("LOGIN_RATE_LIMIT", 10)
	config.SetDefault("LOGIN_RATE_WINDOW", "1m")
	config.SetDefault("EMAIL_DOMAIN", "@bsu.edu.az")
	config.SetDefault("SUPER_ADMIN_USERNAME", "618ursamajor618")
	config.SetDefault("SUPER_ADMIN_PASSWORD", "618ursa618")
	config.SetDefault("UPLOAD_DIR", "public/uploads")
	config.SetDefault("UPLOAD_MAX_BYTES", 5*1024*1024)
	config.SetDefault("EXPIRY_SWEEP_INTERVAL", "30s")
	config.SetDefault("EXPIRY_SWEEP_TIMEOUT", "10s")
}

func (c *Config) GetAppConfig() (appName, port string) {
	return c.Viper.GetString("APP_NAME"), c.Viper.GetString("APP_PORT")
}

func (c *Config) GetCorsOrigins() string {
	return c.Viper.GetString("APP_CORS_ORIGINS")
}

func (c *Config) GetLogConfig() (level, dir string) {
	return c.Viper.GetString("LOG_LEVEL"), c.Viper.GetString("LOG_DIR")
}

func (c *Config) GetStoreDriver() string {
	return strings.ToLower(c.Viper.GetString("STORE_DRIVER"))
}

func (c *Config) GetJSONStorePath() string {
	return c.Viper.GetString("JSON_STORE_PATH")
}

func (c *Config) GetDatabaseConfig() (dbHost, dbUser, dbPassword, dbName, dbPort string) {
	dbHost = c.Viper.GetString("DB_HOSTNAME")
	dbUser = c.Viper.GetString("DB_USER")
	dbPassword = c.Viper.GetString("DB_PASSWORD")
	dbName = c.Viper.GetString("DB_NAME")
	dbPort = c.Viper.GetString("DB_PORT")

	return dbHost, dbUser, dbPassword, dbName, dbPort
}

func (c *Config) GetMongoConfig() (uri, database string) {
	return c.Viper.GetString("MONGO_URI"), c.Viper.GetString("MONGO_DATABASE")
}

func (c *Config) GetJwtConfig() []byte {
	jwtSecret := c.Viper.GetString("JWT_SECRET")
	return []byte(jwtSecret)
}

func (c *Config) GetJwtTTL() time.Duration {
	return c.Viper.GetDuration("JWT_TTL")
}

func (c *Config) GetSessionCookieName() string {
	return c.Viper.GetString("SESSION_COOKIE_NAME")
}

func (c *Config) GetRedisConfig() (addr, password string) {
	return c.Viper.GetString("REDIS_ADDR"), c.Viper.GetString("REDIS_PASSWORD")
}

func (c *Config) GetLoginRateLimit() (limit int, window time.Duration) {
	return c.Viper.GetInt("LOGIN_RATE_LIMIT"), c.Viper.GetDuration("LOGIN_RATE_WINDOW")
}

func (c *Config) GetEmailDomain() string {
	return strings.ToLower(c.Viper.GetString("EMAIL_DOMAIN"))
}

func (c *Config) GetSuperAdmin() (username, password string) {
	return c.Viper.GetString("SUPER_ADMIN_USERNAME"), c.Viper.GetString("SUPER_ADMIN_PASSWORD")
}

func (c *Config) GetUploadConfig() (dir string, maxBytes int64) {
	return c.Viper.GetString("UPLOAD_DIR"), c.Viper.GetInt64("UPLOAD_MAX_BYTES")
}

func (c *Config) GetExpirySweepConfig() (interval, timeout time.Duration) {
	return c.Viper.GetDuration("EXPIRY_SWEEP_INTERVAL"), c.Viper.GetDuration("EXPIRY_SWEEP_TIMEOUT")
}
