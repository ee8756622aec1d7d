package log

import (
	"context"
	"log/slog"
)

// StructuredLogger provides event-specific logging methods
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogSaleAppended logs a sale accepted into the ledger
func (sl *StructuredLogger) LogSaleAppended(ctx context.Context, date, seller, product, region string, quantity int, totalCents int64, ledgerSize int) {
	fields := NewFields().
		WithSale(date, seller, product, region, quantity, totalCents).
		WithOperation(OpAppend).
		WithCount(ledgerSize)

	sl.logger.InfoContext(ctx, "Sale recorded", fields.ToSlice()...)
}

// LogLedgerDegraded logs a ledger file that could not be decoded and was
// replaced by an empty ledger
func (sl *StructuredLogger) LogLedgerDegraded(ctx context.Context, err error) {
	fields := NewFields().
		WithError(err).
		WithErrorType(ErrorTypePersistence).
		WithOperation(OpLoad)

	sl.logger.WarnContext(ctx, "Ledger storage unreadable, starting with an empty ledger", fields.ToSlice()...)
}

// LogReportWritten logs a rendered document saved to disk
func (sl *StructuredLogger) LogReportWritten(ctx context.Context, path string, records int) {
	fields := NewFields().
		WithPath(path).
		WithCount(records).
		WithOperation(OpRender)

	sl.logger.InfoContext(ctx, "Report written", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, errorType string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithErrorType(errorType).
		WithOperation(operation)

	level := slog.LevelError
	if errorType == ErrorTypeValidation || errorType == ErrorTypeArithmetic {
		level = slog.LevelWarn
	}
	sl.logger.Log(ctx, level, msg, allFields.ToSlice()...)
}
