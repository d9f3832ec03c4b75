package redis

import (
	"fmt"

	"github.com/tiletally/tiletally-go/internal/model"
)

// Key prefix for all stored data. The version segment lets a future
// format change coexist with old blobs instead of tripping over them.
const keyPrefix = "tiletally:v1"

// sessionKey returns the Redis key for a Session snapshot
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}
