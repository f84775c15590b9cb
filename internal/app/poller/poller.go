package poller

import (
	"github.com/IT-Nick/quiz-bot/internal/infra/config"
	"gopkg.in/telebot.v4"
)

// NewPoller создаёт Poller в зависимости от режима.
func NewPoller(cfg *config.Config) telebot.Poller {
	if cfg.Mode == config.ModeWebhook {
		return &WebhookPoller{
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: cfg.WebhookURL,
			},
			DropUpdates: true,
		}
	}
	return &telebot.LongPoller{Timeout: cfg.PollInterval}
}

// WebhookPoller регистрирует вебхук в Telegram и ждёт остановки бота.
// Сами обновления принимает HTTP-обработчик приложения и кладёт их в bot.Updates,
// поэтому поллер не слушает порт и не владеет каналом stop.
type WebhookPoller struct {
	Endpoint    *telebot.WebhookEndpoint
	DropUpdates bool

	// IgnoreSetWebhook пропускает вызов setWebhook, если вебхук уже зарегистрирован.
	IgnoreSetWebhook bool
}

// Poll реализует telebot.Poller.
func (p *WebhookPoller) Poll(b *telebot.Bot, _ chan telebot.Update, stop chan struct{}) {
	if !p.IgnoreSetWebhook {
		webhook := &telebot.Webhook{
			Endpoint:    p.Endpoint,
			DropUpdates: p.DropUpdates,
		}
		if err := b.SetWebhook(webhook); err != nil {
			b.OnError(err, nil)
		}
	}
	<-stop
}
