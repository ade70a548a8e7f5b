// Package ids generates identifiers and storage key fragments. Identifiers
// carry a creation timestamp for readability plus a random suffix so rapid
// concurrent submissions cannot collide.
package ids

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const stampLayout = "20060102_150405"

// NewJobID returns a job identifier derived from the creation time.
func NewJobID() string {
	return fmt.Sprintf("job_%s_%s", time.Now().UTC().Format(stampLayout), suffix())
}

// NewStamp returns a unique fragment for storage object keys.
func NewStamp() string {
	return fmt.Sprintf("%s_%s", time.Now().UTC().Format(stampLayout), suffix())
}

func suffix() string {
	return uuid.NewString()[:8]
}
