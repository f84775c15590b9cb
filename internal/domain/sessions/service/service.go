package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	"github.com/IT-Nick/quiz-bot/internal/domain/sessions/repository"
	"github.com/IT-Nick/quiz-bot/internal/logger"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
	"github.com/google/uuid"
)

// ErrEmptyHand возвращается при попытке сброса, когда термин не выбран.
var ErrEmptyHand = errors.New("no term picked up")

// SessionService управляет сессиями викторин в чатах.
type SessionService struct {
	sessionRepo *repository.SessionRepository
	quizzes     *quiz.Quizzes
	log         *logger.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

// NewSessionService создает новый экземпляр SessionService
func NewSessionService(sessionRepo *repository.SessionRepository, quizzes *quiz.Quizzes, log *logger.Logger) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		quizzes:     quizzes,
		log:         log,
		now:         time.Now,
		newID:       uuid.New,
	}
}

// Quizzes возвращает определения обеих викторин.
func (s *SessionService) Quizzes() *quiz.Quizzes {
	return s.quizzes
}

// Current возвращает сессию чата без изменений.
func (s *SessionService) Current(ctx context.Context, chatID int64) (model.Session, bool, error) {
	const op = "SessionService.Current"

	sess, ok, err := s.sessionRepo.Get(ctx, chatID)
	if err != nil {
		return model.Session{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return sess, ok, nil
}

// Open возвращает сессию чата, открывая вкладку по умолчанию, если сессии ещё нет.
func (s *SessionService) Open(ctx context.Context, chatID int64) (model.Session, error) {
	const op = "SessionService.Open"

	sess, err := s.sessionRepo.Update(ctx, chatID, func(sess *model.Session, exists bool) error {
		if !exists {
			s.mount(sess, chatID, quiz.TabMultiChoice)
			return nil
		}
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return model.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

// SwitchTab переключает вкладку. Сессия прежней вкладки отбрасывается.
func (s *SessionService) SwitchTab(ctx context.Context, chatID int64, tab quiz.Tab) (model.Session, error) {
	const op = "SessionService.SwitchTab"

	sess, err := s.sessionRepo.Update(ctx, chatID, func(sess *model.Session, exists bool) error {
		if !exists {
			s.mount(sess, chatID, tab)
			return nil
		}
		if _, remounted := s.quizzes.Switch(sess.Tabs, tab); remounted {
			s.mount(sess, chatID, tab)
			return nil
		}
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return model.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

// Choose применяет событие к викторине с выбором варианта.
func (s *SessionService) Choose(ctx context.Context, chatID int64, ref model.Ref, ev quiz.ChoiceEvent) (model.Session, error) {
	return s.update(ctx, "SessionService.Choose", chatID, ref, quiz.TabMultiChoice, func(sess *model.Session) error {
		prev := sess.Tabs.Choice
		next := s.quizzes.Choice.Reduce(prev, ev)
		sess.Tabs.Choice = next

		if _, ok := ev.(quiz.TryAgain); ok {
			s.restart(sess)
			return nil
		}
		if next.Completed && !prev.Completed {
			res := s.quizzes.Choice.Results(next)
			s.sessionLog(sess).Info("multiple choice quiz completed",
				"score", res.Score, "correct", res.Correct, "total", res.Total)
		}
		return nil
	})
}

// PickTerm берёт термин текущего раунда для перетаскивания.
// Повторный выбор того же термина кладёт его обратно.
func (s *SessionService) PickTerm(ctx context.Context, chatID int64, ref model.Ref, termID string) (model.Session, error) {
	return s.update(ctx, "SessionService.PickTerm", chatID, ref, quiz.TabDragDrop, func(sess *model.Session) error {
		state := sess.Tabs.Match
		if state.Completed {
			return quiz.ErrStaleCallback
		}
		term, ok := s.quizzes.Match.Round(state.Index).Term(termID)
		if !ok {
			return fmt.Errorf("%w: %q", quiz.ErrUnknownTerm, termID)
		}
		if sess.Hand != nil && sess.Hand.TermID == term.ID {
			sess.Hand = nil
			return nil
		}
		payload := quiz.NewDragPayload(term)
		sess.Hand = &payload
		return nil
	})
}

// DropTerm кладёт взятый термин в зону сброса с номером target.
func (s *SessionService) DropTerm(ctx context.Context, chatID int64, ref model.Ref, target int) (model.Session, error) {
	return s.update(ctx, "SessionService.DropTerm", chatID, ref, quiz.TabDragDrop, func(sess *model.Session) error {
		if sess.Hand == nil {
			return ErrEmptyHand
		}
		state := sess.Tabs.Match
		if state.Completed {
			return quiz.ErrStaleCallback
		}
		targets := s.quizzes.Match.Round(state.Index).Targets()
		if target < 0 || target >= len(targets) {
			return fmt.Errorf("%w: #%d", quiz.ErrUnknownTarget, target)
		}

		drop := quiz.Drop{Payload: *sess.Hand, Target: targets[target]}
		if err := s.quizzes.Match.CheckDrop(state, drop); err != nil {
			return err
		}
		sess.Tabs.Match = s.quizzes.Match.Reduce(state, drop)
		sess.Hand = nil
		return nil
	})
}

// Match применяет к викторине на сопоставление события, не связанные с перетаскиванием.
func (s *SessionService) Match(ctx context.Context, chatID int64, ref model.Ref, ev quiz.MatchEvent) (model.Session, error) {
	return s.update(ctx, "SessionService.Match", chatID, ref, quiz.TabDragDrop, func(sess *model.Session) error {
		prev := sess.Tabs.Match
		next := s.quizzes.Match.Reduce(prev, ev)
		sess.Tabs.Match = next
		sess.Hand = nil

		if _, ok := ev.(quiz.TryAgain); ok {
			s.restart(sess)
			return nil
		}
		if next.Completed && !prev.Completed {
			res := s.quizzes.Match.Results(next)
			s.sessionLog(sess).Info("drag and drop quiz completed",
				"score", res.Score, "max_score", res.MaxScore)
		}
		return nil
	})
}

// update применяет fn к сессии, если нажатая кнопка относится к текущему экрану.
func (s *SessionService) update(ctx context.Context, op string, chatID int64, ref model.Ref, tab quiz.Tab, fn func(sess *model.Session) error) (model.Session, error) {
	sess, err := s.sessionRepo.Update(ctx, chatID, func(sess *model.Session, exists bool) error {
		if !exists || sess.Tabs.Active != tab || !sess.Matches(ref) {
			return quiz.ErrStaleCallback
		}
		if err := fn(sess); err != nil {
			return err
		}
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return model.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

// mount открывает на вкладке новую сессию.
func (s *SessionService) mount(sess *model.Session, chatID int64, tab quiz.Tab) {
	now := s.now()
	*sess = model.Session{
		ID:        s.newID(),
		ChatID:    chatID,
		Tabs:      s.quizzes.Mount(tab),
		StartedAt: now,
		UpdatedAt: now,
	}
	s.sessionLog(sess).Info("quiz session mounted", "tab", string(sess.Tabs.Active))
}

// restart выдаёт сброшенной викторине новый идентификатор сессии.
func (s *SessionService) restart(sess *model.Session) {
	sess.ID = s.newID()
	sess.StartedAt = s.now()
	sess.Hand = nil
	s.sessionLog(sess).Info("quiz session restarted", "tab", string(sess.Tabs.Active))
}

func (s *SessionService) sessionLog(sess *model.Session) *logger.Logger {
	return s.log.With("chat_id", sess.ChatID, "session_id", sess.ID.String())
}
