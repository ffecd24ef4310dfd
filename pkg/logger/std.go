package logger

import "log"

// loggerWriter adapts a Logger to io.Writer so stdlib components that
// require a *log.Logger (e.g. http.Server.ErrorLog) can write through it.
type loggerWriter struct {
	l Logger
}

func (w *loggerWriter) Write(p []byte) (int, error) {
	msg := string(p)
	// Strip the trailing newline log.Logger appends.
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.l.Info("%s", msg)
	return len(p), nil
}

// ToStdLogger wraps a Logger in a *log.Logger. Every line written is
// forwarded as an Info message; the Logger backend adds its own prefixes
// and timestamps, so none are set here.
func ToStdLogger(l Logger) *log.Logger {
	return log.New(&loggerWriter{l: l}, "", 0)
}
