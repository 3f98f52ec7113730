package globals

import (
	"os"

	"github.com/joho/godotenv"
)

var JwtSecret = jwtSecretFromEnv()

func jwtSecretFromEnv() []byte {
	_ = godotenv.Load()
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	// dev fallback; set JWT_SECRET in production
	return []byte("studyhub_dev_secret")
}

// Context keys
type ContextKey string

const EmailKey ContextKey = "email"
const RequestIDKey ContextKey = "requestId"
