package cli

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidChunkSize reports a malformed or non-positive chunk-size
// value. main maps it to its own exit code so scripts can tell usage
// mistakes from extraction failures.
var ErrInvalidChunkSize = errors.New("invalid chunk size")

// ParseChunkSize parses a chunk-size specifier of the form <number>[K|M]
// into a token count: "500" -> 500, "200k" -> 200000, "1M" -> 1000000.
// The suffix is case-insensitive. Malformed input and non-positive results
// are rejected.
func ParseChunkSize(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidChunkSize)
	}

	multiplier := 1
	num := s
	switch s[len(s)-1] {
	case 'k', 'K':
		multiplier = 1_000
		num = s[:len(s)-1]
	case 'm', 'M':
		multiplier = 1_000_000
		num = s[:len(s)-1]
	}

	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChunkSize, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidChunkSize, s)
	}

	tokens := n * multiplier
	if tokens <= 0 {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidChunkSize, s)
	}
	return tokens, nil
}
