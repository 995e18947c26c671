package response

// Business status codes.
const (
	CodeSuccess = 0
	CodeError   = 1

	// Auth errors 100xx
	ErrAuthFailed   = 10003
	ErrTokenInvalid = 10004
	ErrNoPermission = 10005

	// Discount errors 200xx
	ErrDiscountInvalid   = 20001
	ErrDiscountExpired   = 20002
	ErrDiscountExhausted = 20003
	ErrDiscountMinimum   = 20004

	// Order errors 300xx
	ErrOrderNotFound      = 30001
	ErrOrderDeleteLive    = 30002
	ErrPaymentUnsupported = 30003
	ErrChargeCreateFailed = 30004
	ErrSignatureInvalid   = 30005

	// Catalog errors 400xx
	ErrProductNotFound = 40001
	ErrProductExists   = 40002

	// System errors 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
