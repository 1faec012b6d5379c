package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shouni/netarmor/securenet"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// geminiKeyGuidance は起動時にキーが無い場合の復旧手順です。
// 生成中のランタイムエラーではなく、設定エラーとして利用者に提示します。
const geminiKeyGuidance = `GEMINI_API_KEY is not set. To fix this:
  1. Generate an API key at https://aistudio.google.com/app/apikey
  2. Enable the Generative Language API in the associated Google Cloud project
  3. Link a billing account to the project if required
  4. Export the key as GEMINI_API_KEY before starting the server`

// --- バリデーション ---

// ValidateEssentialConfig はアプリケーション実行に不可欠な設定を検証します。
// ここで返るエラーは起動をブロックします。
func ValidateEssentialConfig(cfg *Config) error {
	if !IsSecureURL(cfg.ServiceURL) {
		return fmt.Errorf("security error: SERVICE_URL ('%s') must be HTTPS in production", cfg.ServiceURL)
	}

	switch cfg.ImageBackend {
	case BackendImagen, BackendFlash:
		if cfg.GeminiAPIKey == "" {
			return fmt.Errorf("configuration error: %s", geminiKeyGuidance)
		}
	case BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return fmt.Errorf("configuration error: OPENAI_API_KEY is not set")
		}
		if cfg.OpenAIImageURL == "" {
			return fmt.Errorf("configuration error: OPENAI_IMAGE_URL is not set")
		}
	default:
		return fmt.Errorf("configuration error: unknown IMAGE_BACKEND %q (expected %s, %s or %s)",
			cfg.ImageBackend, BackendImagen, BackendFlash, BackendOpenAI)
	}

	if cfg.MaxImagesPerLine < 1 {
		return fmt.Errorf("configuration error: MAX_IMAGES_PER_LINE must be at least 1")
	}

	if cfg.MaxAttempts < 1 {
		return fmt.Errorf("configuration error: MAX_ATTEMPTS must be at least 1")
	}

	return nil
}

// IsSecureURL は指定された URL が HTTPS または localhost であるか判定します。
func IsSecureURL(rawURL string) bool {
	return securenet.IsSecureServiceURL(rawURL)
}
