package recorder

// SignalEvent is an external trading signal relayed to the admin chat.
type SignalEvent struct {
	RequestID string
	Ticker    string
	Signal    string
	Price     string
}

// StrategyEvent is a strategy computed for a chat.
type StrategyEvent struct {
	RequestID  string
	ChatID     string
	Mode       string
	Entry      string
	TakeProfit string
	StopLoss   string
	ATR        string
}

// Recorder journals outbound activity for later analysis. Request handling
// never reads it back.
type Recorder interface {
	RecordSignal(evt *SignalEvent) error
	RecordStrategy(evt *StrategyEvent) error
	Close() error
}
