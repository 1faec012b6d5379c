package config

import (
	"os"
	"path"
	"time"
)

const (
	// BackendImagen は Imagen 系モデルをバッチ生成で叩くデフォルトバックエンドです。
	BackendImagen = "imagen"
	// BackendFlash は flash-image 系モデルを1枚ずつ叩くバックエンドです。
	BackendFlash = "flash"
	// BackendOpenAI は OpenAI 互換の images エンドポイントを叩くバックエンドです。
	BackendOpenAI = "openai"

	DefaultImageModel       = "imagen-3.0-generate-002"
	DefaultFlashImageModel  = "gemini-2.5-flash-image"
	DefaultOpenAIImageModel = "dall-e-3"
	DefaultOpenAIImageSize  = "1024x1024"

	// DefaultHTTPTimeout 画像生成 API の応答を考慮したタイムアウト
	DefaultHTTPTimeout  = 60 * time.Second
	DefaultRateInterval = 1 * time.Second

	// DefaultMaxAttempts は1行あたりの生成試行回数の上限です。
	DefaultMaxAttempts     = 5
	DefaultRetryBaseDelay  = 1 * time.Second
	DefaultMaxImagesPerRow = 3
	DefaultAspectRatio     = "1:1"

	// DefaultStylePrefix は各歌詞行をプロンプトへ変換する際の固定スタイルです。
	DefaultStylePrefix = "digital art, cinematic, vibrant, highly detailed, a visual scene representing the mood and imagery of"
)

// Config は環境変数から読み込まれたアプリケーションの全設定を保持します。
type Config struct {
	ServiceURL string
	Port       string

	// 画像生成バックエンドの選択と各モデル名
	ImageBackend     string
	GeminiAPIKey     string
	ImageModel       string // imagen バックエンド用
	FlashImageModel  string // flash バックエンド用
	OpenAIAPIKey     string
	OpenAIImageURL   string
	OpenAIImageModel string
	OpenAIImageSize  string

	// プロンプトと生成パラメータ
	StylePrefix      string
	AspectRatio      string
	MaxImagesPerLine int

	// レート制御とリトライ
	RateInterval   time.Duration
	MaxAttempts    int
	RetryBaseDelay time.Duration

	SlackWebhookURL string
	TemplateDir     string
	ShutdownTimeout time.Duration
}

// LoadConfig は環境変数から設定を読み込み、Config 構造体を生成します。
func LoadConfig() *Config {
	// 実行環境（Cloud Run, ko）に応じたパスの解決
	baseDir := "."
	if os.Getenv("KO_DATA_PATH") != "" || os.Getenv("K_SERVICE") != "" {
		baseDir = "/app"
	}

	return &Config{
		ServiceURL: getEnv("SERVICE_URL", "http://localhost:8080"),
		Port:       getEnv("PORT", "8080"),

		ImageBackend:     getEnv("IMAGE_BACKEND", BackendImagen),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		ImageModel:       getEnv("IMAGE_MODEL", DefaultImageModel),
		FlashImageModel:  getEnv("FLASH_IMAGE_MODEL", DefaultFlashImageModel),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIImageURL:   getEnv("OPENAI_IMAGE_URL", ""),
		OpenAIImageModel: getEnv("OPENAI_IMAGE_MODEL", DefaultOpenAIImageModel),
		OpenAIImageSize:  getEnv("OPENAI_IMAGE_SIZE", DefaultOpenAIImageSize),

		StylePrefix:      getEnv("STYLE_PREFIX", DefaultStylePrefix),
		AspectRatio:      getEnv("ASPECT_RATIO", DefaultAspectRatio),
		MaxImagesPerLine: getEnvInt("MAX_IMAGES_PER_LINE", 2),

		RateInterval:   getEnvDuration("RATE_INTERVAL", DefaultRateInterval),
		MaxAttempts:    getEnvInt("MAX_ATTEMPTS", DefaultMaxAttempts),
		RetryBaseDelay: getEnvDuration("RETRY_BASE_DELAY", DefaultRetryBaseDelay),

		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		TemplateDir:     path.Join(baseDir, "templates"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}
