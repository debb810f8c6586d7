package globals

import (
	"context"
	"os"
)

// JwtSecret signs staff session tokens. Set JWT_SECRET in production.
var JwtSecret = []byte(jwtSecret())

func jwtSecret() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "braseiro-dev-secret"
}

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()
