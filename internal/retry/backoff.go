package retry

import "time"

// maxShift keeps 1<<attempt well inside time.Duration's range.
const maxShift = 30

// CalculateBackoff calculates exponential backoff delay based on retry count.
// This is a pure function with no side effects - it only performs calculations.
//
// Formula: baseDelay * 2^retryCount
// The result is capped at maxDelay to prevent excessive delays. A maxDelay
// smaller than baseDelay disables growth and always returns baseDelay.
//
// Parameters:
//   - retryCount: Current retry attempt (0-indexed)
//   - baseDelay: Base delay duration (e.g., 50 milliseconds)
//   - maxDelay: Maximum delay duration to cap the result
//
// Returns:
//   - Calculated backoff delay, capped at maxDelay
func CalculateBackoff(retryCount int, baseDelay time.Duration, maxDelay time.Duration) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	}
	if maxDelay < baseDelay {
		return baseDelay
	}
	if retryCount > maxShift {
		return maxDelay
	}

	multiplier := time.Duration(1 << uint(retryCount))

	// Cap at maximum delay, comparing by division so the product cannot overflow
	if baseDelay > maxDelay/multiplier {
		return maxDelay
	}

	return baseDelay * multiplier
}
