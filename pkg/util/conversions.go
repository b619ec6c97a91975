package util

import (
	"fmt"
	"strconv"
)

// Snowflake converts a numeric ID to the string form the platform API uses.
func Snowflake(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// ParseSnowflake converts a platform ID string to its numeric form.
func ParseSnowflake(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse snowflake %q: %w", s, err)
	}
	return n, nil
}

// MustSnowflake is ParseSnowflake for IDs already validated by the
// platform; malformed input yields zero.
func MustSnowflake(s string) uint64 {
	n, _ := strconv.ParseUint(s, 10, 64)
	return n
}
