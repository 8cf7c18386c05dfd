package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Configはクライアント全体の設定
type Config struct {
	APIBaseURL string // バックエンドのベースURL（http://localhost:9090）

	HTTPTimeoutSeconds int // HTTPクライアントのタイムアウト（0ならトランスポート既定のまま）

	TokenFile string // bearerトークンを保存するファイル

	LogLevel string // debug/info/warn/error
}

// Loadは環境変数から読む
func Load() (Config, error) {
	timeout, err := atoiOrZero("HTTP_TIMEOUT_SECONDS")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBaseURL:         os.Getenv("API_BASE_URL"),
		HTTPTimeoutSeconds: timeout,
		TokenFile:          os.Getenv("TOKEN_FILE"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
	}

	//必須チェック
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL is required")
	}

	//省略時はホームディレクトリ配下
	if cfg.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("TOKEN_FILE is required when home dir is unknown: %w", err)
		}
		cfg.TokenFile = filepath.Join(home, ".bookstore", "token")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// MockAPIConfigはモックバックエンドの設定
type MockAPIConfig struct {
	Port      string // サーバーポート（9090）
	JWTSecret string // JWT署名シークレット
}

func LoadMockAPI() (MockAPIConfig, error) {
	cfg := MockAPIConfig{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if cfg.Port == "" {
		cfg.Port = "9090"
	}
	if cfg.JWTSecret == "" {
		return MockAPIConfig{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func atoiOrZero(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
