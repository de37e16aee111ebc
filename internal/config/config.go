package config

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
	"unicode"

	"github.com/joho/godotenv"
)

const (
	DraftStoreMemory   = "memory"
	DraftStoreSQLite   = "sqlite"
	DraftStorePostgres = "postgres"
	DraftStoreRedis    = "redis"
)

type Config struct {
	Env            string
	Port           string
	AllowedOrigins []string
	Timezone       string

	Sheets SheetsConfig
	Mail   MailConfig
	Draft  DraftConfig

	DatabaseURL         string
	RedisAddr           string
	RabbitMQURL         string
	SubmitRatePerMinute int
}

type SheetsConfig struct {
	SpreadsheetID       string
	SheetName           string
	ServiceAccountEmail string
	PrivateKey          string
	// JSON inline ou caminho para o arquivo da service account
	Credentials string
}

type MailConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	Recipients []string
}

type DraftConfig struct {
	Store         string
	Debounce      time.Duration
	TTL           time.Duration
	ClearOnSubmit bool
	SQLitePath    string
}

// Load lê o .env (se existir) e as variáveis de ambiente.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		Timezone:       getEnv("TIMEZONE", "America/Mexico_City"),
		Sheets: SheetsConfig{
			SpreadsheetID:       os.Getenv("GOOGLE_SHEETS_ID"),
			SheetName:           getEnv("GOOGLE_SHEET_NAME", "Brief Saint Diseño"),
			ServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
			PrivateKey:          strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n"),
			Credentials:         firstNonEmpty(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"), os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		},
		Mail: MailConfig{
			Host:       getEnv("MAIL_HOST", "smtp.gmail.com"),
			User:       os.Getenv("MAIL_USER"),
			Password:   os.Getenv("MAIL_PASS"),
			From:       os.Getenv("MAIL_FROM"),
			Recipients: splitList(getEnv("MAIL_RECIPIENTS", "contacto@saintagency.com.mx")),
		},
		Draft: DraftConfig{
			Store:      strings.ToLower(getEnv("DRAFT_STORE", DraftStoreMemory)),
			SQLitePath: getEnv("SQLITE_PATH", "data/drafts.db"),
		},
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.User
	}

	var err error
	if cfg.Mail.Port, err = getInt("MAIL_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.SubmitRatePerMinute, err = getInt("SUBMIT_RATE_PER_MINUTE", 10); err != nil {
		return nil, err
	}
	if cfg.Draft.Debounce, err = getDuration("DRAFT_DEBOUNCE", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.Draft.TTL, err = getDuration("DRAFT_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Draft.ClearOnSubmit, err = getBool("DRAFT_CLEAR_ON_SUBMIT", false); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate confere a combinação de opções. As integrações externas podem
// ficar sem configurar; SheetsEnabled/MailEnabled dizem se estão prontas.
func (c *Config) Validate() error {
	var errs []error

	switch c.Draft.Store {
	case DraftStoreMemory, DraftStoreSQLite:
	case DraftStorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL es requerido con DRAFT_STORE=postgres"))
		}
	case DraftStoreRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR es requerido con DRAFT_STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("DRAFT_STORE desconocido: %q", c.Draft.Store))
	}

	if c.Draft.Debounce <= 0 {
		errs = append(errs, errors.New("DRAFT_DEBOUNCE debe ser mayor que cero"))
	}
	if c.SubmitRatePerMinute <= 0 {
		errs = append(errs, errors.New("SUBMIT_RATE_PER_MINUTE debe ser mayor que cero"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE inválido: %w", err))
	}

	if c.Mail.From != "" {
		if err := checkAddress(c.Mail.From); err != nil {
			errs = append(errs, fmt.Errorf("MAIL_FROM inválido: %w", err))
		}
	}
	for _, r := range c.Mail.Recipients {
		if err := checkAddress(r); err != nil {
			errs = append(errs, fmt.Errorf("MAIL_RECIPIENTS inválido: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) SheetsEnabled() bool {
	return c.Sheets.SpreadsheetID != "" &&
		(c.Sheets.Credentials != "" || (c.Sheets.ServiceAccountEmail != "" && c.Sheets.PrivateKey != ""))
}

func (c *Config) MailEnabled() bool {
	return c.Mail.User != "" && c.Mail.Password != "" && len(c.Mail.Recipients) > 0
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s inválido: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return d, nil
}

// checkAddress exige um endereço simples e só ASCII: o gomail codifica em
// Q-encoding qualquer header com acentos e o endereço deixa de ser entregável.
func checkAddress(addr string) error {
	for _, r := range addr {
		if r > unicode.MaxASCII {
			return fmt.Errorf("%q contiene caracteres no ASCII", addr)
		}
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return fmt.Errorf("%q no es una dirección de correo", addr)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
