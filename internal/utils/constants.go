package utils

// Application Constants
const (
	AppName    = "CyberTrax"
	AppVersion = "1.0.0"

	DefaultCurrency = "RUB"
	DefaultTimeZone = "Europe/Moscow"

	// Pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Phone numbers are stored as "+" followed by this many digits.
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

// Error Messages
const (
	ErrInternalServer     = "Internal server error"
	ErrUnauthorized       = "Unauthorized"
	ErrInvalidCredentials = "Invalid credentials"
	ErrInvalidRequest     = "Invalid request"
	ErrValidationFailed   = "Validation failed"

	ErrCityNotFound         = "City not found"
	ErrTariffNotFound       = "Tariff not found"
	ErrUserNotFound         = "User not found"
	ErrOrderNotFound        = "Order not found"
	ErrFixedRouteNotFound   = "Fixed route not found"
	ErrCityDistanceNotFound = "City distance not found"
)
