// Copyright (c) 2026 Kritika. All rights reserved.

/*
Package convert provides quick type-conversion utilities.

It wraps standards like [strconv] to provide fault-tolerant conversions
(e.g., returning 0 when string parsing fails). This is useful in API
handler contexts parsing optional query parameters.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import "strconv"

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {
	if s == "" {
		return 0
	}

	v, _ := strconv.Atoi(s)
	return v
}

// ToIntD converts a string to an int, returning the provided default if parsing fails or string is empty.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	return def
}
