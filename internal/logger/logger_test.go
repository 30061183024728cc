package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("error", "development")
	assert.Equal(t, logrus.ErrorLevel, log.GetLevel())
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("shouty", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerFormatterByEnvironment(t *testing.T) {
	log := NewLogger("info", ProductionEnv)
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = NewLogger("info", "development")
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestAuditLoggerExclusionCreated(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	categoryID := 3
	auditLogger.LogExclusionCreated(42, "AAPL", "privacy concerns", "manual", &categoryID)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "audit", logEntry["component"])
	assert.Equal(t, "AAPL", logEntry["symbol"])
	assert.Equal(t, float64(42), logEntry["exclusion_id"])
	assert.Equal(t, float64(3), logEntry["category_id"])
}

func TestAuditLoggerExclusionCreatedWithoutCategory(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogExclusionCreated(7, "XOM", "fossil fuels", "bulk_import", nil)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "bulk_import", logEntry["source"])
	assert.NotContains(t, logEntry, "category_id")
}

func TestAuditLoggerExclusionReviewed(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogExclusionReviewed(42, "approve", "verified against policy")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "approve", logEntry["decision"])
	assert.Equal(t, float64(42), logEntry["exclusion_id"])
}

func TestAuditLoggerBulkImport(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogBulkImport(10, 8, 2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(10), logEntry["submitted"])
	assert.Equal(t, float64(8), logEntry["created"])
	assert.Equal(t, float64(2), logEntry["rejected"])
}

func TestAuditLoggerSecurityToggles(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogSecurityExcluded("XOM", "Fossil fuels: coal revenue")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "XOM", logEntry["symbol"])
	assert.Equal(t, "Fossil fuels: coal revenue", logEntry["reason"])

	buf.Reset()
	auditLogger.LogSecurityIncluded("XOM")

	logEntry = parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "XOM", logEntry["symbol"])
	assert.Equal(t, "audit", logEntry["component"])
}

func TestAuditLoggerTickScoreChange(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogTickScoreChange("MSFT", -40)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "MSFT", logEntry["symbol"])
	assert.Equal(t, float64(-40), logEntry["score"])
}

func TestLoggerJSONFormat(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogExclusionRemoved(11)

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	assert.NoError(t, err)
	assert.NotEmpty(t, logEntry)
}

func BenchmarkAuditLoggerExclusionCreated(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	auditLogger := NewAuditLogger(log)

	for i := 0; i < b.N; i++ {
		auditLogger.LogExclusionCreated(42, "AAPL", "privacy concerns", "manual", nil)
	}
}
