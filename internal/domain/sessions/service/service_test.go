package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	"github.com/IT-Nick/quiz-bot/internal/domain/sessions/repository"
	"github.com/IT-Nick/quiz-bot/internal/logger"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
)

const chatID int64 = 1001

// newTestService создаёт сервис поверх встроенного каталога и пустого хранилища.
func newTestService(t *testing.T) *SessionService {
	t.Helper()
	catalog, err := quiz.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog вернул ошибку: %v", err)
	}
	return NewSessionService(repository.NewSessionRepository(), quiz.NewQuizzes(catalog), logger.Nop())
}

func TestOpen_MountsDefaultTab(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.Open(ctx, chatID)
	if err != nil {
		t.Fatalf("Open вернул ошибку: %v", err)
	}
	if first.Tabs.Active != quiz.TabMultiChoice || first.ChatID != chatID {
		t.Errorf("Ожидалась вкладка multi-choice, получено %+v", first)
	}

	second, err := svc.Open(ctx, chatID)
	if err != nil {
		t.Fatalf("Open вернул ошибку: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Повторный Open не должен пересоздавать сессию")
	}
}

// TestChoose_FullRun проходит викторину с выбором варианта через сервис.
func TestChoose_FullRun(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sess, _ := svc.Open(ctx, chatID)
	q := svc.Quizzes().Choice

	var err error
	for i := 0; i < q.Len(); i++ {
		correct := q.Question(i).CorrectAnswer
		sess, err = svc.Choose(ctx, chatID, model.RefOf(sess), quiz.SelectOption{OptionID: correct})
		if err != nil {
			t.Fatalf("Вопрос %d: Choose вернул ошибку: %v", i, err)
		}
		sess, err = svc.Choose(ctx, chatID, model.RefOf(sess), quiz.Continue{})
		if err != nil {
			t.Fatalf("Вопрос %d: Continue вернул ошибку: %v", i, err)
		}
	}
	if !sess.Tabs.Choice.Completed || sess.Tabs.Choice.Score != 120 {
		t.Errorf("Ожидалось завершение со 120 очками, получено %+v", sess.Tabs.Choice)
	}

	before := sess.ID
	sess, err = svc.Choose(ctx, chatID, model.RefOf(sess), quiz.TryAgain{})
	if err != nil {
		t.Fatalf("TryAgain вернул ошибку: %v", err)
	}
	if sess.ID == before {
		t.Errorf("После сброса ожидался новый идентификатор сессии")
	}
	if sess.Tabs.Choice.Score != 0 || sess.Tabs.Choice.Completed {
		t.Errorf("Ожидалось начальное состояние, получено %+v", sess.Tabs.Choice)
	}
}

// TestChoose_StaleRef проверяет отклонение кнопок со старого экрана.
func TestChoose_StaleRef(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sess, _ := svc.Open(ctx, chatID)
	old := model.RefOf(sess)

	sess, _ = svc.Choose(ctx, chatID, old, quiz.SelectOption{OptionID: "A"})
	sess, _ = svc.Choose(ctx, chatID, old, quiz.Continue{})
	if sess.Tabs.Choice.Index != 1 {
		t.Fatalf("Ожидался второй вопрос, получено %d", sess.Tabs.Choice.Index)
	}

	_, err := svc.Choose(ctx, chatID, old, quiz.SelectOption{OptionID: "B"})
	if !errors.Is(err, quiz.ErrStaleCallback) {
		t.Errorf("Ожидалась ErrStaleCallback, получено %v", err)
	}

	// Кнопки вкладки drag-and-drop не действуют на вкладке multi-choice.
	_, err = svc.Match(ctx, chatID, model.RefOf(sess), quiz.ClearMatches{})
	if !errors.Is(err, quiz.ErrStaleCallback) {
		t.Errorf("Ожидалась ErrStaleCallback для чужой вкладки, получено %v", err)
	}

	// Без сессии любая кнопка устарела.
	_, err = svc.Choose(ctx, 42, old, quiz.Continue{})
	if !errors.Is(err, quiz.ErrStaleCallback) {
		t.Errorf("Ожидалась ErrStaleCallback без сессии, получено %v", err)
	}
}

// TestSwitchTab проверяет отбрасывание сессии при смене вкладки.
func TestSwitchTab(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sess, _ := svc.Open(ctx, chatID)
	sess, _ = svc.Choose(ctx, chatID, model.RefOf(sess), quiz.SelectOption{OptionID: "B"})
	sess, _ = svc.Choose(ctx, chatID, model.RefOf(sess), quiz.Continue{})

	same, err := svc.SwitchTab(ctx, chatID, quiz.TabMultiChoice)
	if err != nil {
		t.Fatalf("SwitchTab вернул ошибку: %v", err)
	}
	if same.ID != sess.ID || same.Tabs.Choice.Score != sess.Tabs.Choice.Score {
		t.Errorf("Выбор активной вкладки не должен сбрасывать сессию")
	}

	dd, err := svc.SwitchTab(ctx, chatID, quiz.TabDragDrop)
	if err != nil {
		t.Fatalf("SwitchTab вернул ошибку: %v", err)
	}
	if dd.ID == sess.ID || dd.Tabs.Active != quiz.TabDragDrop {
		t.Errorf("Ожидалась новая сессия drag-and-drop, получено %+v", dd)
	}

	back, _ := svc.SwitchTab(ctx, chatID, quiz.TabMultiChoice)
	if back.Tabs.Choice.Score != 0 || back.Tabs.Choice.Index != 0 {
		t.Errorf("После возврата ожидалась чистая сессия, получено %+v", back.Tabs.Choice)
	}
}

// TestDragAndDrop_Round проходит раунд сопоставления: выбор термина, сброс, перенос и переход.
func TestDragAndDrop_Round(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sess, err := svc.SwitchTab(ctx, chatID, quiz.TabDragDrop)
	if err != nil {
		t.Fatalf("SwitchTab вернул ошибку: %v", err)
	}

	_, err = svc.DropTerm(ctx, chatID, model.RefOf(sess), 0)
	if !errors.Is(err, ErrEmptyHand) {
		t.Errorf("Ожидалась ErrEmptyHand, получено %v", err)
	}

	round := svc.Quizzes().Match.Round(0)
	// Первые два термина кладём на свои места, третий и четвёртый меняем местами.
	placement := []int{0, 1, 3, 2}
	for i, term := range round.Terms {
		sess, err = svc.PickTerm(ctx, chatID, model.RefOf(sess), term.ID)
		if err != nil {
			t.Fatalf("PickTerm(%s) вернул ошибку: %v", term.ID, err)
		}
		if sess.Hand == nil || sess.Hand.TermID != term.ID {
			t.Fatalf("Ожидался термин %s в руке, получено %+v", term.ID, sess.Hand)
		}
		sess, err = svc.DropTerm(ctx, chatID, model.RefOf(sess), placement[i])
		if err != nil {
			t.Fatalf("DropTerm(%d) вернул ошибку: %v", placement[i], err)
		}
		if sess.Hand != nil {
			t.Errorf("После сброса рука должна быть пуста")
		}
	}

	sess, err = svc.Match(ctx, chatID, model.RefOf(sess), quiz.Continue{})
	if err != nil {
		t.Fatalf("Continue вернул ошибку: %v", err)
	}
	if sess.Tabs.Match.Score != 50 || sess.Tabs.Match.Index != 1 {
		t.Errorf("Ожидалось 50 очков и второй раунд, получено %+v", sess.Tabs.Match)
	}
}

func TestPickTerm_Toggle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sess, _ := svc.SwitchTab(ctx, chatID, quiz.TabDragDrop)
	termID := svc.Quizzes().Match.Round(0).Terms[0].ID

	sess, _ = svc.PickTerm(ctx, chatID, model.RefOf(sess), termID)
	sess, _ = svc.PickTerm(ctx, chatID, model.RefOf(sess), termID)
	if sess.Hand != nil {
		t.Errorf("Повторный выбор должен вернуть термин на место")
	}

	_, err := svc.PickTerm(ctx, chatID, model.RefOf(sess), "atom")
	if !errors.Is(err, quiz.ErrUnknownTerm) {
		t.Errorf("Ожидалась ErrUnknownTerm для термина другого раунда, получено %v", err)
	}
}

func TestDropTerm_UnknownTarget(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sess, _ := svc.SwitchTab(ctx, chatID, quiz.TabDragDrop)
	sess, _ = svc.PickTerm(ctx, chatID, model.RefOf(sess), "variable")

	_, err := svc.DropTerm(ctx, chatID, model.RefOf(sess), 9)
	if !errors.Is(err, quiz.ErrUnknownTarget) {
		t.Errorf("Ожидалась ErrUnknownTarget, получено %v", err)
	}
}

// TestOpenAndSwitchTab_RefreshActivity проверяет, что /start и нажатие активной вкладки
// продлевают жизнь сессии.
func TestOpenAndSwitchTab_RefreshActivity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := start
	svc.now = func() time.Time { return now }

	first, err := svc.Open(ctx, chatID)
	if err != nil {
		t.Fatalf("Open вернул ошибку: %v", err)
	}

	now = start.Add(30 * time.Minute)
	sess, err := svc.Open(ctx, chatID)
	if err != nil {
		t.Fatalf("Open вернул ошибку: %v", err)
	}
	if sess.ID != first.ID || !sess.UpdatedAt.Equal(now) {
		t.Errorf("Open должен обновить время активности той же сессии: %+v", sess)
	}

	now = start.Add(50 * time.Minute)
	sess, err = svc.SwitchTab(ctx, chatID, quiz.TabMultiChoice)
	if err != nil {
		t.Fatalf("SwitchTab вернул ошибку: %v", err)
	}
	if sess.ID != first.ID || !sess.UpdatedAt.Equal(now) {
		t.Errorf("Нажатие активной вкладки должно обновить время активности: %+v", sess)
	}
	if !sess.StartedAt.Equal(start) {
		t.Errorf("Время начала сессии не должно меняться, получено %s", sess.StartedAt)
	}
}
