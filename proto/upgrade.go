package proto

import "strings"

// ChooseUpgrade picks the first supported protocol out of an Upgrade field
// value, as the tokens are listed in the client's order of preference.
func ChooseUpgrade(value string) Proto {
	for len(value) > 0 {
		var token string
		token, value, _ = strings.Cut(value, ",")

		if p := parseUpgradeToken(strings.TrimSpace(token)); p != Unknown {
			return p
		}
	}

	return Unknown
}

func parseUpgradeToken(token string) Proto {
	switch token {
	case "http/1.0", "HTTP/1.0":
		return HTTP10
	case "http/1.1", "HTTP/1.1":
		return HTTP11
	}

	return Unknown
}
