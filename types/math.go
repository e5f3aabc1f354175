package types

import (
	"errors"
	"math"
)

var (
	ErrOverflow          = errors.New("arithmetic overflow")
	ErrInvalidVoteChoice = errors.New("invalid vote choice")
)

func checkedAddU64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

func checkedMulU64(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, ErrOverflow
	}
	return a * b, nil
}

func checkedAddI64(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// CheckedAddU64 exposes the checked add for callers outside this package.
func CheckedAddU64(a, b uint64) (uint64, error) { return checkedAddU64(a, b) }

// CheckedSubU64 fails instead of wrapping when b exceeds a.
func CheckedSubU64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrOverflow
	}
	return a - b, nil
}

// CheckedAddI64 exposes the checked signed add for callers outside this package.
func CheckedAddI64(a, b int64) (int64, error) { return checkedAddI64(a, b) }
