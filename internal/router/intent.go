package router

import (
	"math"
	"strconv"
	"strings"
)

// Intent is what a chat message asks for. It is derived from the message text
// alone; no conversation state is kept between messages.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentAnalysis
	IntentSwing
	IntentLongPrompt
	IntentLongEntry
	IntentNews
)

func (i Intent) String() string {
	switch i {
	case IntentAnalysis:
		return "analysis"
	case IntentSwing:
		return "swing"
	case IntentLongPrompt:
		return "long-prompt"
	case IntentLongEntry:
		return "long-entry"
	case IntentNews:
		return "news"
	default:
		return "unknown"
	}
}

// normalize trims the text and drops a "@BotName" suffix from slash commands.
func normalize(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "/") {
		if at := strings.IndexByte(text, '@'); at > 0 {
			text = text[:at]
		}
	}
	return text
}

// ParseIntent maps a message to an Intent. Any finite number is read as a
// long entry price, even when no "long" prompt preceded it.
func ParseIntent(text string) Intent {
	text = normalize(text)
	switch {
	case text == "/analisi":
		return IntentAnalysis
	case text == "/news":
		return IntentNews
	case strings.EqualFold(text, "swing"):
		return IntentSwing
	case strings.EqualFold(text, "long"):
		return IntentLongPrompt
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return IntentLongEntry
	}
	return IntentUnknown
}
