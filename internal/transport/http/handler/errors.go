package handler

// User-facing messages, kept byte-for-byte stable: the web client matches
// on several of them.
const (
	errMissingDetails     = "Missing Details"
	errUserExists         = "User already exists"
	errCredsRequired      = "Email and password are required"
	errInvalidEmail       = "Invalid email"
	errInvalidPassword    = "Invalid password"
	errAlreadyVerified    = "Account Already verified"
	errUserNotFound       = "User not found"
	errInvalidOtp         = "Invalid OTP"
	errOtpExpired         = "OTP Expired"
	errEmailRequired      = "Email is required"
	errResetFieldsMissing = "Email, OTP and new Password are required"
)
