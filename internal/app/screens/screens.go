package screens

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
	"gopkg.in/telebot.v4"
)

// Screen - готовое к отправке сообщение с клавиатурой.
type Screen struct {
	Text   string
	Markup *telebot.ReplyMarkup
}

// Options возвращает параметры отправки экрана.
func (s Screen) Options() *telebot.SendOptions {
	return &telebot.SendOptions{
		ParseMode:   telebot.ModeHTML,
		ReplyMarkup: s.Markup,
	}
}

// Render строит экран активной вкладки сессии.
func Render(q *quiz.Quizzes, sess model.Session) Screen {
	markup := &telebot.ReplyMarkup{}
	rows := []telebot.Row{tabsRow(markup, sess.Tabs.Active)}

	var text string
	switch sess.Tabs.Active {
	case quiz.TabDragDrop:
		var body []telebot.Row
		text, body = renderMatch(markup, q.Match, sess)
		rows = append(rows, body...)
	default:
		var body []telebot.Row
		text, body = renderChoice(markup, q.Choice, sess)
		rows = append(rows, body...)
	}

	markup.Inline(rows...)
	return Screen{Text: text, Markup: markup}
}

func tabsRow(markup *telebot.ReplyMarkup, active quiz.Tab) telebot.Row {
	var buttons []telebot.Btn
	for _, tab := range quiz.AllTabs {
		label := tab.Label()
		if tab == active {
			label = "• " + label
		}
		buttons = append(buttons, markup.Data(label, model.TabKey, string(tab)))
	}
	return markup.Row(buttons...)
}

func renderChoice(markup *telebot.ReplyMarkup, q *quiz.ChoiceQuiz, sess model.Session) (string, []telebot.Row) {
	state := sess.Tabs.Choice
	ref := model.RefOf(sess)

	if q.Stage(state) == quiz.StageCompleted {
		res := q.Results(state)
		text := fmt.Sprintf("🎉 <b>Quiz Complete!</b>\n\n<b>%d points</b>\nYou got %d out of %d questions correct",
			res.Score, res.Correct, res.Total)
		retry := markup.Data("Try Again", model.ChoiceRetryKey, callbackData(ref, "")...)
		return text, []telebot.Row{markup.Row(retry)}
	}

	question := q.Question(state.Index)
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Question %d</b>  %s\n", state.Index+1, ProgressBar(q.Progress(state)))
	fmt.Fprintf(&b, "🎯 Goal: %d points · Current Points: %d\n\n", q.Goal(), state.Score)
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(question.Text))

	if state.ShowHint {
		fmt.Fprintf(&b, "\n❌ Think again!\n<i>%s</i>\n", html.EscapeString(question.Hint))
	}
	if q.IsCorrect(state) {
		b.WriteString("\n✅ Right!\n<i>Great job! You got it correct.</i>\n")
	}

	var rows []telebot.Row
	for _, option := range question.Options {
		label := fmt.Sprintf("%s. %s", option.ID, option.Text)
		if option.ID == state.Selected {
			if option.ID == question.CorrectAnswer {
				label = "✅ " + label
			} else {
				label = "❌ " + label
			}
		}
		rows = append(rows, markup.Row(markup.Data(label, model.ChoiceSelectKey, callbackData(ref, option.ID)...)))
	}

	var nav []telebot.Btn
	if q.CanGoBack(state) {
		nav = append(nav, markup.Data("← Back", model.ChoiceBackKey, callbackData(ref, "")...))
	}
	if q.CanContinue(state) {
		nav = append(nav, markup.Data("Continue →", model.ChoiceNextKey, callbackData(ref, "")...))
	}
	if len(nav) > 0 {
		rows = append(rows, markup.Row(nav...))
	}
	return b.String(), rows
}

func renderMatch(markup *telebot.ReplyMarkup, q *quiz.MatchQuiz, sess model.Session) (string, []telebot.Row) {
	state := sess.Tabs.Match
	ref := model.RefOf(sess)

	if q.Stage(state) == quiz.StageCompleted {
		res := q.Results(state)
		text := fmt.Sprintf("🎉 <b>Quiz Complete!</b>\n\n<b>%d points</b>\nMaximum possible score: %d",
			res.Score, res.MaxScore)
		retry := markup.Data("Try Again", model.MatchRetryKey, callbackData(ref, "")...)
		return text, []telebot.Row{markup.Row(retry)}
	}

	round := q.Round(state.Index)
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Question %d</b>  %s\n", state.Index+1, ProgressBar(q.Progress(state)))
	fmt.Fprintf(&b, "Points: %d\n\n", state.Score)
	fmt.Fprintf(&b, "<b>%s</b>\n\n", html.EscapeString(round.Title))

	for i, target := range round.Targets() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, html.EscapeString(target))
		dropped, ok := q.DroppedAt(state, target)
		switch {
		case !ok:
			b.WriteString("    ⬜ …\n")
		case q.IsCorrectAt(state, target):
			fmt.Fprintf(&b, "    ✅ %s\n", html.EscapeString(dropped.Text))
		default:
			fmt.Fprintf(&b, "    ❌ %s\n", html.EscapeString(dropped.Text))
		}
	}

	if sess.Hand != nil {
		fmt.Fprintf(&b, "\n✋ Holding <b>%s</b>. Tap a definition number to drop it.", html.EscapeString(sess.Hand.Text))
	} else {
		b.WriteString("\nTap a term to pick it up.")
	}

	var rows []telebot.Row
	var terms []telebot.Btn
	for _, term := range round.Terms {
		label := term.Text
		switch {
		case sess.Hand != nil && sess.Hand.TermID == term.ID:
			label = "✋ " + label
		case q.IsPlaced(state, term.ID):
			label = "· " + label
		}
		terms = append(terms, markup.Data(label, model.MatchPickKey, callbackData(ref, term.ID)...))
	}
	rows = append(rows, splitRow(markup, terms, 2)...)

	if sess.Hand != nil {
		var targets []telebot.Btn
		for i := range round.Targets() {
			n := strconv.Itoa(i + 1)
			targets = append(targets, markup.Data("⤵ "+n, model.MatchDropKey, callbackData(ref, strconv.Itoa(i))...))
		}
		rows = append(rows, markup.Row(targets...))
	}

	controls := []telebot.Btn{markup.Data("↺ Reset", model.MatchClearKey, callbackData(ref, "")...)}
	if q.CanContinue(state) {
		controls = append(controls, markup.Data("Continue →", model.MatchNextKey, callbackData(ref, "")...))
	}
	rows = append(rows, markup.Row(controls...))
	return b.String(), rows
}

// splitRow раскладывает кнопки по строкам не длиннее perRow.
func splitRow(markup *telebot.ReplyMarkup, buttons []telebot.Btn, perRow int) []telebot.Row {
	var rows []telebot.Row
	for start := 0; start < len(buttons); start += perRow {
		end := start + perRow
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, markup.Row(buttons[start:end]...))
	}
	return rows
}

// ProgressBar рисует полосу прогресса по вопросам.
func ProgressBar(marks []quiz.Mark) string {
	var b strings.Builder
	for _, m := range marks {
		switch m {
		case quiz.MarkCurrent:
			b.WriteString("●")
		case quiz.MarkDone:
			b.WriteString("◉")
		default:
			b.WriteString("○")
		}
	}
	return b.String()
}
