package rdx

import (
	"log"
	"os"

	"braseiro/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

// RdxHset stores a field in a Redis hash.
func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

// RdxHget reads a field from a Redis hash.
func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

// RdxHdel removes a field from a Redis hash.
func RdxHdel(hash, field string) error {
	return Conn.HDel(globals.Ctx, hash, field).Err()
}

// Ping verifies the connection at startup; pub/sub deployments fail loudly
// instead of silently dropping change events.
func Ping() {
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("Redis unreachable at startup: %v", err)
	}
}
