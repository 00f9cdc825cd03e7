package cache

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransitKey names the cache entry for a profile's transit snapshot. Callers
// pass the already-bucketed instant; two times in the same bucket must yield
// the same key.
func TransitKey(profileID uuid.UUID, bucket time.Time) string {
	return fmt.Sprintf("transits:%s:%d", profileID, bucket.Unix())
}
