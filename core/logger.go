package core

// Logger is the diagnostic tracing contract. It is collateral to the
// functional contracts: the session and API layers never log-and-swallow
// errors, they surface them and may trace on the way out.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
