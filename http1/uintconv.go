package http1

import "math"

// parseUint is a tiny strconv.ParseUint for plain decimal values, rejecting
// signs, whitespace and overflow.
func parseUint(raw string) (num uint, ok bool) {
	if len(raw) == 0 {
		return 0, false
	}

	for _, char := range []byte(raw) {
		char -= '0'
		if char > 9 {
			return 0, false
		}
		if num > (math.MaxUint-uint(char))/10 {
			return 0, false
		}

		num = num*10 + uint(char)
	}

	return num, true
}
