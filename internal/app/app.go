package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/IT-Nick/quiz-bot/internal/app/handlers/http/health_handler"
	"github.com/IT-Nick/quiz-bot/internal/app/handlers/http/webhook_handler"
	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/choice_handler"
	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/drop_handler"
	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/match_handler"
	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/pick_handler"
	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/start_handler"
	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/tab_handler"
	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/view"
	"github.com/IT-Nick/quiz-bot/internal/app/middleware"
	"github.com/IT-Nick/quiz-bot/internal/app/poller"
	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	sessionsRepo "github.com/IT-Nick/quiz-bot/internal/domain/sessions/repository"
	sessionsService "github.com/IT-Nick/quiz-bot/internal/domain/sessions/service"
	"github.com/IT-Nick/quiz-bot/internal/infra/config"
	"github.com/IT-Nick/quiz-bot/internal/infra/timer"
	"github.com/IT-Nick/quiz-bot/internal/logger"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
	"gopkg.in/telebot.v4"
	telemw "gopkg.in/telebot.v4/middleware"
)

// WebhookPath - путь, на который Telegram присылает обновления в режиме webhook.
const WebhookPath = "/telegram/webhook"

const shutdownTimeout = 5 * time.Second

type Services struct {
	sessionService *sessionsService.SessionService
}

type App struct {
	config *config.Config
	log    *logger.Logger
	bot    *telebot.Bot
	server *http.Server

	sessionRepo *sessionsRepo.SessionRepository
	startedAt   time.Time

	Services
}

// NewApp собирает приложение: каталог викторин, сервисы и бота.
func NewApp(cfg *config.Config, log *logger.Logger) (*App, error) {
	catalog, err := quiz.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("quiz.DefaultCatalog: %w", err)
	}

	app := &App{
		config:    cfg,
		log:       log,
		startedAt: time.Now(),
	}
	app.initServices(quiz.NewQuizzes(catalog))

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.Token,
		Poller: poller.NewPoller(cfg),
		OnError: func(err error, c telebot.Context) {
			log.Error("telegram bot error", "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	return app, nil
}

// Функция для инициализации сервисов и репозиториев
func (app *App) initServices(quizzes *quiz.Quizzes) {
	app.sessionRepo = sessionsRepo.NewSessionRepository()
	app.sessionService = sessionsService.NewSessionService(app.sessionRepo, quizzes, app.log)
}

// bootstrapHandlersTelegram - регистрирует middleware и обработчики для бота
func (app *App) bootstrapHandlersTelegram(ctx context.Context) {
	app.bot.Use(
		middleware.Recover(app.log),
		middleware.Logger(app.log, app.config.Debug),
		telemw.AutoRespond(),
		view.WithContext(ctx),
		middleware.DebugUserActions(app.config.Debug, app.sessionService),
	)

	svc := app.sessionService

	app.bot.Handle("/start", start_handler.NewStartHandler(svc).GetHandlerFunc())
	app.bot.Handle("/quiz", tab_handler.NewTabCommandHandler(svc, quiz.TabMultiChoice).GetHandlerFunc())
	app.bot.Handle("/match", tab_handler.NewTabCommandHandler(svc, quiz.TabDragDrop).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.TabKey}, tab_handler.NewTabHandler(svc).GetHandlerFunc())

	// Викторина с выбором варианта
	app.bot.Handle(&telebot.InlineButton{Unique: model.ChoiceSelectKey}, choice_handler.NewSelectHandler(svc).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.ChoiceNextKey}, choice_handler.NewNextHandler(svc).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.ChoiceBackKey}, choice_handler.NewBackHandler(svc).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.ChoiceRetryKey}, choice_handler.NewRetryHandler(svc).GetHandlerFunc())

	// Перетаскивание: взять термин, затем положить его на определение
	app.bot.Handle(&telebot.InlineButton{Unique: model.MatchPickKey}, pick_handler.NewPickHandler(svc).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.MatchDropKey}, drop_handler.NewDropHandler(svc).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.MatchClearKey}, match_handler.NewResetHandler(svc).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.MatchNextKey}, match_handler.NewNextHandler(svc).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.MatchRetryKey}, match_handler.NewRetryHandler(svc).GetHandlerFunc())
}

// Router возвращает HTTP-роутер: проверка состояния и, в режиме webhook, приём обновлений.
func (app *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)

	r.Method(http.MethodGet, "/healthz", health_handler.NewHealthHandler(app.sessionRepo, app.config.Mode, app.startedAt))
	if app.config.Mode == config.ModeWebhook {
		r.Method(http.MethodPost, WebhookPath,
			webhook_handler.NewWebhookHandler(app.bot.Updates, webhook_handler.DefaultQueueTimeout, app.log))
	}
	return r
}

// ListenAndServeTelegram запускает бота и останавливает его при отмене ctx
func (app *App) ListenAndServeTelegram(ctx context.Context) error {
	app.bootstrapHandlersTelegram(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.bot.Start()
	}()

	app.log.Info("telegram bot started", "mode", app.config.Mode, "username", app.bot.Me.Username)

	<-ctx.Done()
	app.bot.Stop()
	<-done
	app.log.Info("telegram bot stopped")
	return nil
}

// ListenAndServeHTTP запускает HTTP сервер и останавливает его при отмене ctx
func (app *App) ListenAndServeHTTP(ctx context.Context) error {
	app.server = &http.Server{
		Addr:              app.config.ListenAddr,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.log.Info("http server listening", "addr", app.config.ListenAddr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// ListenAndServe запускает бота, HTTP сервер и очистку сессий до отмены ctx или первой ошибки
func (app *App) ListenAndServe(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.ListenAndServeTelegram(gctx)
	})
	g.Go(func() error {
		return app.ListenAndServeHTTP(gctx)
	})
	g.Go(func() error {
		return timer.NewSessionSweeper(app.sessionRepo, app.config.SessionTTL, app.log).Run(gctx)
	})

	return g.Wait()
}
