package logger

import "github.com/stretchr/testify/mock"

// MockLogger implements Logger for tests that assert on emitted entries
type MockLogger struct {
	mock.Mock
}

var _ Logger = (*MockLogger)(nil)

// Debug mocks the Debug method
func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// Info mocks the Info method
func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// Warn mocks the Warn method
func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// Error mocks the Error method
func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// Fatal mocks the Fatal method
func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// Debugf mocks the Debugf method
func (m *MockLogger) Debugf(format string, args ...interface{}) {
	m.Called(format, args)
}

// Infof mocks the Infof method
func (m *MockLogger) Infof(format string, args ...interface{}) {
	m.Called(format, args)
}

// Warnf mocks the Warnf method
func (m *MockLogger) Warnf(format string, args ...interface{}) {
	m.Called(format, args)
}

// Errorf mocks the Errorf method
func (m *MockLogger) Errorf(format string, args ...interface{}) {
	m.Called(format, args)
}

// Fatalf mocks the Fatalf method
func (m *MockLogger) Fatalf(format string, args ...interface{}) {
	m.Called(format, args)
}

// WithField returns the mock itself so expectations stay on one instance
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m
}

// WithFields returns the mock itself so expectations stay on one instance
func (m *MockLogger) WithFields(fields map[string]interface{}) Logger {
	return m
}

// Sync mocks the Sync method
func (m *MockLogger) Sync() error {
	args := m.Called()
	return args.Error(0)
}
