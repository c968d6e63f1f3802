package crack

// DefaultWeakSecrets returns the built-in wordlist quick scans run before a
// caller-supplied dictionary. Returned as a fresh copy each call.
func DefaultWeakSecrets() []string {
	out := make([]string, len(weakSecrets))
	copy(out, weakSecrets)
	return out
}

var weakSecrets = []string{
	// Common passwords
	"secret", "password", "123456", "12345678", "qwerty",
	"abc123", "password1", "admin", "letmein", "welcome",

	// JWT-specific secrets
	"jwt", "jwtsecret", "jwt_secret", "jwt-secret",
	"jwtkey", "jwt_key", "jwt-key", "supersecret",
	"mysecret", "my_secret", "secretkey", "secret_key",
	"signingkey", "signing_key", "privatekey", "private_key",

	// Dev and test values
	"test", "testing", "development", "dev", "debug",
	"changeme", "changethis", "default", "example",
	"demo", "sample", "placeholder",

	// Framework defaults
	"your-256-bit-secret", "your-secret-key", "your_secret_key",
	"keyboard cat", "shhhhh", "AllYourBase",
	"key", "key123", "apikey",
}
