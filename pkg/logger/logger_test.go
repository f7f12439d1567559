package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

type LogEntry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name           string
		verbosityLevel int
		logFunc        func(Logger)
		expectedLevel  string
		expectedMsg    string
		shouldLog      bool
	}{
		{
			name:           "warn level with default verbosity",
			verbosityLevel: 0,
			logFunc: func(l Logger) {
				l.Warn("warn message")
			},
			expectedLevel: "warn",
			expectedMsg:   "warn message",
			shouldLog:     true,
		},
		{
			name:           "info level with default verbosity stays quiet",
			verbosityLevel: 0,
			logFunc: func(l Logger) {
				l.Info("info message")
			},
			shouldLog: false,
		},
		{
			name:           "debug level with insufficient verbosity",
			verbosityLevel: 0,
			logFunc: func(l Logger) {
				l.Debug("debug message")
			},
			shouldLog: false,
		},
		{
			name:           "info level with sufficient verbosity",
			verbosityLevel: 1,
			logFunc: func(l Logger) {
				l.Info("info message")
			},
			expectedLevel: "info",
			expectedMsg:   "info message",
			shouldLog:     true,
		},
		{
			name:           "debug level with sufficient verbosity",
			verbosityLevel: 1,
			logFunc: func(l Logger) {
				l.Debug("debug message")
			},
			expectedLevel: "debug",
			expectedMsg:   "debug message",
			shouldLog:     true,
		},
		{
			name:           "trace level with insufficient verbosity",
			verbosityLevel: 1,
			logFunc: func(l Logger) {
				l.Trace("trace message")
			},
			shouldLog: false,
		},
		{
			name:           "trace level with sufficient verbosity",
			verbosityLevel: 2,
			logFunc: func(l Logger) {
				l.Trace("trace message")
			},
			expectedLevel: "debug",
			expectedMsg:   "TRACE: trace message",
			shouldLog:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := NewLogger(Config{
				Verbosity: tt.verbosityLevel,
				Output:    &buf,
			})

			tt.logFunc(logger)

			if tt.shouldLog {
				var entry LogEntry
				err := json.Unmarshal(buf.Bytes(), &entry)
				if err != nil {
					t.Logf("Raw buffer content: %s", buf.String())
				}
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedLevel, entry.Level)
				assert.Equal(t, tt.expectedMsg, entry.Message)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Verbosity: 1,
		Output:    &buf,
	})

	testFields := Fields{
		"key1": "value1",
		"key2": 123,
	}

	logger.WithFields(testFields).Info("test message")

	var entry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &entry)
	assert.NoError(t, err)

	assert.Equal(t, "value1", entry["key1"])
	assert.Equal(t, float64(123), entry["key2"])
	assert.Equal(t, "test message", entry["message"])
}
