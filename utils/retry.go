// file: utils/retry.go
package utils

import (
	"time"
)

// Retry runs fn up to attempts times with a fixed delay between tries,
// returning nil on the first success or the last error once attempts are
// spent. fn receives the 1-based attempt number so callers can loosen
// constraints on retries (the upload path only permits overwriting from the
// second attempt on).
func Retry(attempts int, delay time.Duration, fn func(attempt int) error) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(i); err == nil {
			return nil
		}
		if i < attempts {
			time.Sleep(delay)
		}
	}
	return err
}
