package notifier

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"TickerWatch/internal/model"
)

// Static replies.
const (
	StrategyPrompt      = "🎯 Vuoi una strategia? Rispondi *swing* oppure *long*."
	LongEntryPrompt     = "✍️ Inserisci il prezzo di ingresso per la strategia *long* (es. 3.25)."
	InvalidEntryText    = "❌ Prezzo di ingresso non valido. Inserisci un numero positivo, es. 3.25"
	DataUnavailableText = "⚠️ Errore: dati non disponibili."
	NoNewsText          = "Nessuna news trovata."
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown escapes the characters Telegram's legacy Markdown treats as markup.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// HelpText lists the recognized commands.
func HelpText(symbol string) string {
	return fmt.Sprintf("📌 Comandi disponibili:\n"+
		"/analisi – Analisi tecnica multi-timeframe $%[1]s\n"+
		"swing – Strategia swing sull'ultimo prezzo\n"+
		"long – Strategia long con prezzo di ingresso\n"+
		"/news – Ultime news su $%[1]s", symbol)
}

func fmtOpt(v *float64, format string) string {
	if v == nil {
		return "n/d"
	}
	return fmt.Sprintf(format, *v)
}

func rsiZone(rsi float64) string {
	switch {
	case rsi > 70:
		return "Overbought"
	case rsi < 30:
		return "Oversold"
	default:
		return "Neutro"
	}
}

// FormatSection renders one timeframe of the analysis report.
func FormatSection(r model.TimeframeReport, currency string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🕒 *%s*\n", r.Timeframe.Label))
	if r.Err != nil || r.Indicators == nil {
		b.WriteString("⚠️ Nessun dato disponibile\n")
		return b.String()
	}
	ind := r.Indicators

	b.WriteString(fmt.Sprintf("Prezzo: *%.2f %s*\n", ind.LastPrice, currency))

	trend := "n/d"
	if ind.EMA20 != nil && ind.EMA50 != nil {
		if ind.Bullish() {
			trend = "📈 Rialzista"
		} else {
			trend = "📉 Ribassista"
		}
	}
	b.WriteString(fmt.Sprintf("Trend: %s (EMA20 %s | EMA50 %s)\n",
		trend, fmtOpt(ind.EMA20, "%.2f"), fmtOpt(ind.EMA50, "%.2f")))

	if ind.RSI != nil {
		b.WriteString(fmt.Sprintf("RSI(14): %.2f → %s\n", *ind.RSI, rsiZone(*ind.RSI)))
	} else {
		b.WriteString("RSI(14): n/d\n")
	}
	b.WriteString(fmt.Sprintf("MACD: %s | Signal: %s\n", fmtOpt(ind.MACD, "%.4f"), fmtOpt(ind.MACDSignal, "%.4f")))
	b.WriteString(fmt.Sprintf("ATR(14): %s\n", fmtOpt(ind.ATR, "%.4f")))
	b.WriteString(fmt.Sprintf("Momentum: %s\n", fmtOpt(ind.Momentum, "%+.4f")))
	if r.Timeframe.Interval == "1d" {
		b.WriteString(fmt.Sprintf("Volume: %s (Media: %s)\n",
			humanize.Comma(int64(math.Round(ind.LastVolume))), humanize.Comma(int64(math.Round(ind.AvgVolume)))))
	}

	if ind.BreakoutConfirmed() {
		b.WriteString("Breakout: ✅ Confermato\n")
	} else {
		b.WriteString("Breakout: ❌ Non confermato\n")
	}
	return b.String()
}

// FormatReport concatenates the timeframe sections in order under a header.
func FormatReport(symbol, currency string, reports []model.TimeframeReport) string {
	sections := make([]string, 0, len(reports))
	for _, r := range reports {
		sections = append(sections, FormatSection(r, currency))
	}
	return fmt.Sprintf("📊 *Analisi tecnica $%s*\n\n%s", symbol, strings.Join(sections, "\n"))
}

// FormatStrategy renders a strategy result.
func FormatStrategy(res *model.StrategyResult, currency string) string {
	label := "Swing"
	if res.Mode == model.StrategyLong {
		label = "Long"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎯 *Strategia %s*\n", label))
	b.WriteString(fmt.Sprintf("Ingresso: *%s %s*\n", res.Entry.StringFixed(2), currency))
	b.WriteString(fmt.Sprintf("Take profit: *%s %s*\n", res.TakeProfit.StringFixed(2), currency))
	b.WriteString(fmt.Sprintf("Stop loss: *%s %s*\n", res.StopLoss.StringFixed(2), currency))
	b.WriteString(fmt.Sprintf("ATR(14): %s", res.ATR.StringFixed(4)))
	return b.String()
}

// FormatNews renders headline links, or NoNewsText when there are none.
func FormatNews(symbol string, items []model.NewsItem) string {
	if len(items) == 0 {
		return NoNewsText
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📰 *Ultime news su $%s:*\n", symbol))
	for _, it := range items {
		b.WriteString(fmt.Sprintf("- [%s](%s)\n", EscapeMarkdown(it.Title), it.Link))
	}
	return b.String()
}

// FormatSignalAlert renders an external trading signal for the admin chat.
func FormatSignalAlert(a *model.SignalAlert) string {
	return fmt.Sprintf("🚨 *Segnale ricevuto*\nTicker: %s\nSegnale: %s\nPrezzo: %v",
		EscapeMarkdown(a.Ticker), EscapeMarkdown(a.Signal), a.Price)
}
