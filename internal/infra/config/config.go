/*
MIT License

Copyright (c) 2025 Первый Бит

Данная лицензия разрешает использование, копирование, изменение, слияние, публикацию, распространение,
лицензирование и/или продажу копий программного обеспечения при соблюдении следующих условий:

В вышеуказанном уведомлении об авторских правах и данном уведомлении о разрешении должны быть включены все копии
или значимые части программного обеспечения.

ПРОГРАММНОЕ ОБЕСПЕЧЕНИЕ ПРЕДОСТАВЛЯЕТСЯ "КАК ЕСТЬ", БЕЗ ГАРАНТИЙ ЛЮБОГО РОДА, ЯВНЫХ ИЛИ ПОДРАЗУМЕВАЕМЫХ,
ВКЛЮЧАЯ, НО НЕ ОГРАНИЧИВАЯСЬ, ГАРАНТИЯМИ КОММЕРЧЕСКОЙ ПРИГОДНОСТИ, СООТВЕТСТВИЯ ДЛЯ ОПРЕДЕЛЕННОЙ ЦЕЛИ И
НЕНАРУШЕНИЯ ПРАВ. НИ В КОЕМ СЛУЧАЕ АВТОРЫ ИЛИ ПРАВООБЛАДАТЕЛИ НЕ НЕСУТ ОТВЕТСТВЕННОСТИ ПО ИСКАМ,
УСЛОВИЯМ, ДАМГЕ или другим обязательствам, возникающим из, или в связи с использованием, или иным образом
связанным с данным программным обеспечением.
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Режимы получения обновлений от Telegram.
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Config содержит параметры запуска бота.
type Config struct {
	Token        string        // токен Telegram-бота, обязательный параметр
	Mode         string        // "polling" или "webhook"
	WebhookURL   string        // публичный URL вебхука, нужен в режиме webhook
	ListenAddr   string        // адрес HTTP-сервера (health и вебхук)
	PollInterval time.Duration // таймаут лонгпуллинга
	Debug        bool          // подробное логирование обновлений
	LogMode      string        // "dev" или "prod"
	SessionTTL   time.Duration // время жизни неактивной сессии
}

// LoadConfig загружает конфигурацию из файла .env (если он есть) и переменных окружения.
func LoadConfig() (*Config, error) {
	// Файл .env не обязателен.
	_ = godotenv.Load()

	cfg := &Config{
		Token:        os.Getenv("TELEGRAM_BOT_TOKEN"),
		Mode:         envOr("BOT_MODE", ModePolling),
		WebhookURL:   os.Getenv("WEBHOOK_URL"),
		ListenAddr:   envOr("LISTEN_ADDR", ":8443"),
		PollInterval: 10 * time.Second,
		Debug:        envBool("DEBUG", false),
		LogMode:      envOr("LOG_MODE", "dev"),
		SessionTTL:   60 * time.Minute,
	}

	if piStr := os.Getenv("POLL_INTERVAL"); piStr != "" {
		pi, err := strconv.Atoi(piStr)
		if err != nil || pi <= 0 {
			return nil, fmt.Errorf("invalid POLL_INTERVAL %q", piStr)
		}
		cfg.PollInterval = time.Duration(pi) * time.Second
	}

	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		ttl, err := strconv.Atoi(ttlStr)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL %q", ttlStr)
		}
		cfg.SessionTTL = time.Duration(ttl) * time.Minute
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность параметров.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	switch c.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.WebhookURL == "" {
			return fmt.Errorf("WEBHOOK_URL is required in webhook mode")
		}
	default:
		return fmt.Errorf("unknown BOT_MODE %q", c.Mode)
	}
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
