package auth

// Messages returned to the caller in a failed Result.
const (
	MsgCredentialsRequired = "Email and password are required"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgPasswordTooShort    = "Password must be at least 8 characters"
	MsgEmailRegistered     = "Email already registered"
)
