package dice

import "go.uber.org/zap"

// LoggedSource wraps a Source and logs every draw at debug level, giving a
// full audit trail of the rolls behind a battle or enemy selection.
type LoggedSource struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedSource creates a LoggedSource drawing from src and logging to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) *LoggedSource {
	return &LoggedSource{src: src, logger: logger}
}

// Intn draws from the wrapped Source and logs the bound and result.
//
// Precondition: n > 0.
func (l *LoggedSource) Intn(n int) int {
	v := l.src.Intn(n)
	l.logger.Debug("dice roll",
		zap.Int("bound", n),
		zap.Int("result", v),
	)
	return v
}
