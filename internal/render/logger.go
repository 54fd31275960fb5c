package render

import (
	"log/slog"
	"sync/atomic"
)

var renderLog atomic.Pointer[slog.Logger]

// SetLogger routes the debug record written after each render to l. A nil
// logger silences it again, which is also the initial state.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	renderLog.Store(l)
}

func logger() *slog.Logger {
	if l := renderLog.Load(); l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
