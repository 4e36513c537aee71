// file: utils/retry_test.go
package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Retry(3, 0, func(attempt int) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryRecoversAfterFailures(t *testing.T) {
	var attempts []int
	err := Retry(3, 0, func(attempt int) error {
		attempts = append(attempts, attempt)
		if attempt < 3 {
			return errors.New("todavía no")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, attempts)
}

func TestRetryReturnsLastError(t *testing.T) {
	last := errors.New("fallo definitivo")
	calls := 0
	err := Retry(3, 0, func(attempt int) error {
		calls++
		if attempt == 3 {
			return last
		}
		return errors.New("fallo intermedio")
	})
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, last)
}

func TestRetryAttemptNumbersAreOneBased(t *testing.T) {
	var seen []int
	_ = Retry(2, 0, func(attempt int) error {
		seen = append(seen, attempt)
		return errors.New("x")
	})
	assert.Equal(t, []int{1, 2}, seen)
}
