package logger

// NoOpLogger discards every entry. Packages that accept an optional Logger
// fall back to Discard so they never have to nil-check.
type NoOpLogger struct{}

// Discard is the shared NoOpLogger instance.
var Discard Logger = NoOpLogger{}

func (NoOpLogger) Debug(string, map[string]interface{}) {}
func (NoOpLogger) Info(string, map[string]interface{})  {}
func (NoOpLogger) Warn(string, map[string]interface{})  {}
func (NoOpLogger) Error(string, map[string]interface{}) {}

// Fatal does not exit the process.
func (NoOpLogger) Fatal(string, map[string]interface{}) {}

func (NoOpLogger) Debugf(string, ...interface{}) {}
func (NoOpLogger) Infof(string, ...interface{})  {}
func (NoOpLogger) Warnf(string, ...interface{})  {}
func (NoOpLogger) Errorf(string, ...interface{}) {}
func (NoOpLogger) Fatalf(string, ...interface{}) {}

func (l NoOpLogger) WithField(string, interface{}) Logger     { return l }
func (l NoOpLogger) WithFields(map[string]interface{}) Logger { return l }
func (NoOpLogger) Sync() error                                { return nil }

// OrDiscard returns l, or Discard when l is nil.
func OrDiscard(l Logger) Logger {
	if l == nil {
		return Discard
	}
	return l
}
