// Package yo turns the query string of a Yo callback into the chat message
// that is relayed to the webhook.
package yo

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"yo-relay/internal/common/logging"
)

// Accessory is the optional attachment of a Yo: a Link or a Location.
type Accessory interface {
	accessory()
}

type Link struct {
	URL string
}

type Location struct {
	Latitude  float64
	Longitude float64
}

func (Link) accessory()     {}
func (Location) accessory() {}

// ParsedRequest is the result of parsing one raw query string. A nil Username
// means the parameter was absent; a nil Accessory means no attachment.
type ParsedRequest struct {
	Username  *string
	Accessory Accessory
}

// Parse decodes a raw query string (without the leading '?'). It never fails:
// malformed parameters are dropped and missing ones are left nil.
func Parse(rawQuery string) ParsedRequest {
	request := ParsedRequest{}

	decoded, ok := percentDecode(rawQuery)
	if !ok {
		decoded = ""
	}

	for _, param := range strings.Split(decoded, "&") {
		key, value, found := strings.Cut(param, "=")
		if !found {
			continue
		}

		switch key {
		case "username":
			username := value
			request.Username = &username
		case "link":
			if url, ok := percentDecode(value); ok {
				request.Accessory = Link{URL: url}
			}
		case "location":
			if location, ok := parseLocation(value); ok {
				request.Accessory = location
			}
		default:
			logging.Log(logging.Debug, "Ignoring unknown parameter %q", key)
		}
	}

	return request
}

func parseLocation(value string) (Location, bool) {
	latStr, lngStr, found := strings.Cut(value, ";")
	if !found {
		return Location{}, false
	}

	lat, err := parseCoordinate(latStr)
	if err != nil {
		return Location{}, false
	}
	lng, err := parseCoordinate(lngStr)
	if err != nil {
		return Location{}, false
	}

	return Location{Latitude: lat, Longitude: lng}, true
}

// parseCoordinate accepts plain decimal notation only; hex floats and digit
// separators are rejected.
func parseCoordinate(s string) (float64, error) {
	if strings.ContainsAny(s, "xX_pP") {
		return 0, strconv.ErrSyntax
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}

// percentDecode replaces every valid %XX triplet with its byte. Malformed
// escapes are copied through unchanged and '+' is not treated as a space.
// ok is false when the decoded bytes are not valid UTF-8.
func percentDecode(s string) (string, bool) {
	if !strings.Contains(s, "%") {
		return s, utf8.ValidString(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, okHi := unhex(s[i+1])
			lo, okLo := unhex(s[i+2])
			if okHi && okLo {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}

	decoded := b.String()
	return decoded, utf8.ValidString(decoded)
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
