package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cinema_factory/model"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	NotifyTo string
}

type AuthConfig struct {
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration
}

type JobsConfig struct {
	DigestCron         string
	EventRetentionDays int
}

type AppConfig struct {
	Port         string
	AllowOrigins string

	DB         DBConfig
	PayPhi     model.PayPhiConfig
	Cloudinary CloudinaryConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	SMTP       SMTPConfig
	Auth       AuthConfig
	Jobs       JobsConfig
}

var envLocations = []string{".env", "config/.env"}

// Load reads the first .env found and then the process environment.
func Load() (*AppConfig, error) {
	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}
	if !envLoaded {
		log.Info("No .env file found, using environment variables")
	}
	return FromEnv()
}

func FromEnv() (*AppConfig, error) {
	amounts, err := parseAmounts(os.Getenv("PAYPHI_ALLOWED_AMOUNTS"))
	if err != nil {
		return nil, err
	}
	timeout, err := time.ParseDuration(getEnvWithDefault("PAYPHI_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("PAYPHI_TIMEOUT: %w", err)
	}
	ttl, err := time.ParseDuration(getEnvWithDefault("JWT_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}

	cfg := &AppConfig{
		Port:         getEnvWithDefault("PORT", "5000"),
		AllowOrigins: getEnvWithDefault("ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		DB: DBConfig{
			Host:     getEnvWithDefault("DB_HOST", "localhost"),
			Port:     getEnvWithDefault("DB_PORT", "5432"),
			User:     getEnvWithDefault("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnvWithDefault("DB_NAME", "cinema_factory"),
			SSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),
		},
		PayPhi: model.PayPhiConfig{
			MerchantID:            os.Getenv("PAYPHI_MERCHANT_ID"),
			SecretKey:             os.Getenv("PAYPHI_SECRET_KEY"),
			GatewayBaseURL:        strings.TrimRight(os.Getenv("PAYPHI_BASE_URL"), "/"),
			ReturnURL:             os.Getenv("PAYPHI_RETURN_URL"),
			FrontendBaseURL:       strings.TrimRight(os.Getenv("FRONTEND_BASE_URL"), "/"),
			AllowedAmounts:        amounts,
			AddlParam2:            os.Getenv("PAYPHI_ADDL_PARAM2"),
			DefaultCourse:         getEnvWithDefault("PAYPHI_DEFAULT_COURSE", "General"),
			CurrencyCode:          getEnvWithDefault("PAYPHI_CURRENCY_CODE", "356"),
			PayType:               getEnvWithDefault("PAYPHI_PAY_TYPE", "0"),
			TransactionType:       getEnvWithDefault("PAYPHI_TRANSACTION_TYPE", "SALE"),
			CustomerEmailID:       os.Getenv("PAYPHI_CUSTOMER_EMAIL"),
			CustomerMobileNo:      os.Getenv("PAYPHI_CUSTOMER_MOBILE"),
			SuccessCodes:          splitList(getEnvWithDefault("PAYPHI_SUCCESS_CODES", "R1000,0000,0,SUCCESS")),
			ResponseCodeFields:    splitList(getEnvWithDefault("PAYPHI_RESPONSE_CODE_FIELDS", "responseCode,ResponseCode,code,status")),
			CaseInsensitiveFields: getEnvBool("PAYPHI_CASE_INSENSITIVE_FIELDS", true),
			Timeout:               timeout,
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnvWithDefault("KAFKA_TOPIC", "payments"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
			NotifyTo: os.Getenv("SMTP_NOTIFY_TO"),
		},
		Auth: AuthConfig{
			AdminUsername:     getEnvWithDefault("ADMIN_USERNAME", "cfadmin"),
			AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
			AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
			JWTSecret:         os.Getenv("JWT_SECRET"),
			TokenTTL:          ttl,
		},
		Jobs: JobsConfig{
			DigestCron:         getEnvWithDefault("DIGEST_CRON", "0 8 * * *"),
			EventRetentionDays: getEnvInt("EVENT_RETENTION_DAYS", 90),
		},
	}
	return cfg, nil
}

// Validate reports every missing setting the payment flow cannot run without.
func (c *AppConfig) Validate() error {
	var errs []error
	required := map[string]string{
		"PAYPHI_MERCHANT_ID": c.PayPhi.MerchantID,
		"PAYPHI_SECRET_KEY":  c.PayPhi.SecretKey,
		"PAYPHI_BASE_URL":    c.PayPhi.GatewayBaseURL,
		"PAYPHI_RETURN_URL":  c.PayPhi.ReturnURL,
		"FRONTEND_BASE_URL":  c.PayPhi.FrontendBaseURL,
		"JWT_SECRET":         c.Auth.JWTSecret,
	}
	for _, key := range []string{"PAYPHI_MERCHANT_ID", "PAYPHI_SECRET_KEY", "PAYPHI_BASE_URL", "PAYPHI_RETURN_URL", "FRONTEND_BASE_URL", "JWT_SECRET"} {
		if required[key] == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
	}
	if len(c.PayPhi.AllowedAmounts) == 0 {
		errs = append(errs, errors.New("PAYPHI_ALLOWED_AMOUNTS is required"))
	}
	if len(c.PayPhi.SuccessCodes) == 0 {
		errs = append(errs, errors.New("PAYPHI_SUCCESS_CODES must not be empty"))
	}
	if len(c.PayPhi.ResponseCodeFields) == 0 {
		errs = append(errs, errors.New("PAYPHI_RESPONSE_CODE_FIELDS must not be empty"))
	}
	if c.Auth.AdminPassword == "" && c.Auth.AdminPasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required"))
	}
	if _, err := cron.ParseStandard(c.Jobs.DigestCron); err != nil {
		errs = append(errs, fmt.Errorf("DIGEST_CRON: %w", err))
	}
	return errors.Join(errs...)
}

func parseAmounts(raw string) ([]decimal.Decimal, error) {
	var amounts []decimal.Decimal
	for _, part := range splitList(raw) {
		d, err := decimal.NewFromString(part)
		if err != nil {
			return nil, fmt.Errorf("PAYPHI_ALLOWED_AMOUNTS: %q is not a number", part)
		}
		amounts = append(amounts, d)
	}
	return amounts, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}
