package logging

import "log/slog"

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSlipID is the standardized structured logging key for slip identifiers.
	FieldSlipID = "slip_id"
	// FieldOrderNumber is the standardized structured logging key for order numbers.
	FieldOrderNumber = "order_number"
	// FieldRunID is the standardized structured logging key for sync run identifiers.
	FieldRunID = "run_id"
	// FieldStockCode is the standardized structured logging key for part stock codes.
	FieldStockCode = "stock_code"
)

// WithComponent scopes a logger to a named component, substituting the nop
// logger when nil is supplied.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NopLogger()
	}
	return logger.With(slog.String(FieldComponent, component))
}
