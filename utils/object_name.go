// file: utils/object_name.go
package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateObjectName builds a storage key for an uploaded file: a random
// prefix plus a nanosecond timestamp, keeping the original extension.
// Collisions are practically impossible, which is why the upload path can
// afford to fail hard on a first-attempt conflict.
func GenerateObjectName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%s_%d%s", random, time.Now().UnixNano(), ext)
}
