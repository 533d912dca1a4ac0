package calendarsync

import (
	"regexp"
	"strconv"
)

// Import recognizes events titled "TL <service> <price>", e.g. "TL Haircut
// 25" or "tl Beard Trim 15.50". The leading tag is case-insensitive and the
// price allows up to two decimal places. This pattern is a contract with
// events users type by hand; do not loosen it casually.
var importTitlePattern = regexp.MustCompile(`(?i)^TL\s+(.+?)\s+(\d+(?:\.\d{1,2})?)$`)

// ParseImportTitle extracts the service name and price from an event title.
// Titles that do not follow the pattern are not ours and report ok=false.
func ParseImportTitle(title string) (service string, price float64, ok bool) {
	m := importTitlePattern.FindStringSubmatch(title)
	if m == nil {
		return "", 0, false
	}
	price, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", 0, false
	}
	return m[1], price, true
}
