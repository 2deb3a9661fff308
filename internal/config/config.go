package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Receipt   ReceiptConfig
	Printer   PrinterConfig
	Dispatch  DispatchConfig
	JWT       JWTConfig
	Storage   StorageConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type StoreConfig struct {
	Name        string
	Lines       []string
	FooterLines []string
}

// ReceiptConfig holds the 58mm paper layout. These are constants of the
// deployment, not user preferences.
type ReceiptConfig struct {
	Width       int
	LabelWidth  int
	PriceColumn int
	Timezone    string
}

type PrinterConfig struct {
	// Transport selects the physical transport: "bluetooth" or "none".
	Transport   string
	ScanTimeout time.Duration
	// Image rasterization bounds for the print/image endpoint.
	MaxImageWidth int
	Threshold     int
}

type DispatchConfig struct {
	// FallbackDelay is how long an app handoff waits before the agent
	// assumes the external app never opened.
	FallbackDelay time.Duration
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type StorageConfig struct {
	// Path holds the preferences file and temporary image uploads.
	Path          string
	UploadMaxSize int64
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "diwan-print-agent")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("STORE_NAME", "DIWAN MOTOR")
	viper.SetDefault("STORE_LINES", []string{"Jl. Raya Serpong KM 7 No. 17", "Telp 0812-9000-1234"})
	viper.SetDefault("STORE_FOOTER_LINES", []string{"Terima Kasih", "Atas Kunjungan Anda"})
	viper.SetDefault("RECEIPT_WIDTH", 32)
	viper.SetDefault("RECEIPT_LABEL_WIDTH", 12)
	viper.SetDefault("RECEIPT_PRICE_COLUMN", 20)
	viper.SetDefault("RECEIPT_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("PRINTER_TRANSPORT", "bluetooth")
	viper.SetDefault("PRINTER_SCAN_TIMEOUT_SECONDS", 10)
	viper.SetDefault("PRINTER_MAX_IMAGE_WIDTH", 384)
	viper.SetDefault("PRINTER_THRESHOLD", 128)
	viper.SetDefault("DISPATCH_FALLBACK_DELAY_SECONDS", 3)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("STORAGE_PATH", "./storage")
	viper.SetDefault("UPLOAD_MAX_SIZE", 10485760)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Store: StoreConfig{
			Name:        viper.GetString("STORE_NAME"),
			Lines:       viper.GetStringSlice("STORE_LINES"),
			FooterLines: viper.GetStringSlice("STORE_FOOTER_LINES"),
		},
		Receipt: ReceiptConfig{
			Width:       viper.GetInt("RECEIPT_WIDTH"),
			LabelWidth:  viper.GetInt("RECEIPT_LABEL_WIDTH"),
			PriceColumn: viper.GetInt("RECEIPT_PRICE_COLUMN"),
			Timezone:    viper.GetString("RECEIPT_TIMEZONE"),
		},
		Printer: PrinterConfig{
			Transport:     viper.GetString("PRINTER_TRANSPORT"),
			ScanTimeout:   time.Duration(viper.GetInt("PRINTER_SCAN_TIMEOUT_SECONDS")) * time.Second,
			MaxImageWidth: viper.GetInt("PRINTER_MAX_IMAGE_WIDTH"),
			Threshold:     viper.GetInt("PRINTER_THRESHOLD"),
		},
		Dispatch: DispatchConfig{
			FallbackDelay: time.Duration(viper.GetInt("DISPATCH_FALLBACK_DELAY_SECONDS")) * time.Second,
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		Storage: StorageConfig{
			Path:          viper.GetString("STORAGE_PATH"),
			UploadMaxSize: viper.GetInt64("UPLOAD_MAX_SIZE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}
