package errors

import "fmt"

// UnknownScreen creates an unknown screen identifier error
func UnknownScreen(screen string) *KioskError {
	return New(ErrCodeUnknownScreen, fmt.Sprintf("screen '%s' is not registered", screen)).
		WithDetail("screen", screen)
}

// HistoryUnavailable creates a native history failure error
func HistoryUnavailable(op string, err error) *KioskError {
	return Wrap(err, ErrCodeHistoryUnavailable,
		fmt.Sprintf("native history %s failed", op)).
		WithDetail("operation", op)
}

// LogDelivery creates a traffic log delivery failure error
func LogDelivery(collector string, err error) *KioskError {
	return Wrap(err, ErrCodeLogDelivery,
		fmt.Sprintf("traffic log delivery via %s failed", collector)).
		WithDetail("collector", collector)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *KioskError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *KioskError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// ChatUnavailable creates an assistant backend failure error
func ChatUnavailable(err error) *KioskError {
	return Wrap(err, ErrCodeChatUnavailable, "assistant backend unavailable")
}

// CatalogInvalid creates an inventory catalog parse error
func CatalogInvalid(path string, err error) *KioskError {
	return Wrap(err, ErrCodeCatalogInvalid,
		fmt.Sprintf("inventory catalog %s could not be parsed", path)).
		WithDetail("path", path)
}
