// Package logger provides audit logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for actions that change
// the exclusions list or analyst scores.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogExclusionCreated logs a new exclusion.
func (al *AuditLogger) LogExclusionCreated(id int, symbol, reason, source string, categoryID *int) {
	fields := logrus.Fields{
		"exclusion_id": id,
		"symbol":       symbol,
		"reason":       reason,
		"source":       source,
	}
	if categoryID != nil {
		fields["category_id"] = *categoryID
	}
	al.WithFields(fields).Info("Exclusion created")
}

// LogExclusionRemoved logs an exclusion removal.
func (al *AuditLogger) LogExclusionRemoved(id int) {
	al.WithField("exclusion_id", id).Info("Exclusion removed")
}

// LogExclusionReviewed logs a review decision on an exclusion.
func (al *AuditLogger) LogExclusionReviewed(id int, decision, notes string) {
	al.WithFields(logrus.Fields{
		"exclusion_id": id,
		"decision":     decision,
		"notes":        notes,
	}).Info("Exclusion reviewed")
}

// LogBulkImport logs the outcome of a bulk exclusion import.
func (al *AuditLogger) LogBulkImport(submitted, created, rejected int) {
	al.WithFields(logrus.Fields{
		"submitted": submitted,
		"created":   created,
		"rejected":  rejected,
	}).Info("Bulk exclusion import completed")
}

// LogSecurityExcluded logs a quick per-security exclusion toggle.
func (al *AuditLogger) LogSecurityExcluded(symbol, reason string) {
	al.WithFields(logrus.Fields{
		"symbol": symbol,
		"reason": reason,
	}).Info("Security excluded from universe")
}

// LogSecurityIncluded logs a security restored to the investable universe.
func (al *AuditLogger) LogSecurityIncluded(symbol string) {
	al.WithField("symbol", symbol).Info("Security included back in universe")
}

// LogTickScoreChange logs a manual tick score write.
func (al *AuditLogger) LogTickScoreChange(symbol string, score int) {
	al.WithFields(logrus.Fields{
		"symbol": symbol,
		"score":  score,
	}).Info("Tick score updated")
}
