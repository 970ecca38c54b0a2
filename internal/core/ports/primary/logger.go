package primary

// Logger is the structured logger used across services and adapters.
// Arguments after msg are alternating keys and values.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})

	// With returns a logger that adds the given keys and values to every entry
	With(args ...interface{}) Logger
}
