package model

// Уникальные идентификаторы inline-кнопок. Привязаны к обработчикам в app.
const (
	TabKey = "tab"

	ChoiceSelectKey = "mc_select"
	ChoiceNextKey   = "mc_next"
	ChoiceBackKey   = "mc_back"
	ChoiceRetryKey  = "mc_retry"

	MatchPickKey  = "dd_pick"
	MatchDropKey  = "dd_drop"
	MatchClearKey = "dd_reset"
	MatchNextKey  = "dd_next"
	MatchRetryKey = "dd_retry"
)
