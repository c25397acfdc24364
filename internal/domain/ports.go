package domain

import "strings"

// UnknownSentinel is the valid placeholder for unresolved ports and countries.
const UnknownSentinel = "Unknown"

// portCountries maps major tracked ports to their countries. Lookup is
// case-insensitive. The registry is deliberately small; anything unlisted
// resolves to the Unknown sentinel rather than an error.
var portCountries = map[string]string{
	"shanghai":    "China",
	"ningbo":      "China",
	"shenzhen":    "China",
	"singapore":   "Singapore",
	"busan":       "South Korea",
	"rotterdam":   "Netherlands",
	"antwerp":     "Belgium",
	"hamburg":     "Germany",
	"los angeles": "United States",
	"long beach":  "United States",
	"new york":    "United States",
	"savannah":    "United States",
	"dubai":       "United Arab Emirates",
	"santos":      "Brazil",
	"mumbai":      "India",
}

// ResolveCountry returns the country for a known port name, or the Unknown
// sentinel for anything unrecognized.
func ResolveCountry(port string) string {
	if c, ok := portCountries[strings.ToLower(strings.TrimSpace(port))]; ok {
		return c
	}
	return UnknownSentinel
}
