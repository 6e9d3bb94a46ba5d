package logger

// Sink is a leveled logging backend. The parsing engine reports
// row-level problems through it instead of returning per-row errors.
type Sink interface {
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

var sinks []Sink

// Init installs one or more logging backends. Must be called before
// any logging function; calls before Init are dropped.
func Init(backends ...Sink) {
	sinks = backends
}

// Debug writes a message at DEBUG level to all configured backends.
func Debug(message string, keyvals ...any) {
	for _, s := range sinks {
		s.Debug(message, keyvals...)
	}
}

// Info writes a message at INFO level to all configured backends.
func Info(message string, keyvals ...any) {
	for _, s := range sinks {
		s.Info(message, keyvals...)
	}
}

// Warn writes a message at WARN level to all configured backends.
func Warn(message string, keyvals ...any) {
	for _, s := range sinks {
		s.Warn(message, keyvals...)
	}
}

// Error writes a message at ERROR level to all configured backends.
func Error(message string, keyvals ...any) {
	for _, s := range sinks {
		s.Error(message, keyvals...)
	}
}

// Fatal writes a message at FATAL level and terminates the program.
func Fatal(message string, keyvals ...any) {
	for _, s := range sinks {
		s.Fatal(message, keyvals...)
	}
}
