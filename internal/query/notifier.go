package query

import "go.uber.org/zap"

// Notifier receives exactly one outcome notification per mutation. The
// dashboard surfaces these as toasts; headless callers plug in a logger
// or drop them.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// ZapNotifier routes notifications to a zap logger
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier creates a logger-backed notifier
func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	return &ZapNotifier{logger: logger}
}

func (n *ZapNotifier) Success(message string) {
	n.logger.Info("mutation succeeded", zap.String("message", message))
}

func (n *ZapNotifier) Error(message string) {
	n.logger.Warn("mutation failed", zap.String("message", message))
}

// NopNotifier discards notifications
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// Ensure implementations satisfy Notifier
var (
	_ Notifier = (*ZapNotifier)(nil)
	_ Notifier = NopNotifier{}
)
