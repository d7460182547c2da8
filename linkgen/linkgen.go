// Package linkgen builds and parses canonical affiliate tracking URLs.
// All functions are pure string manipulation, safe to call from any
// goroutine.
package linkgen

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ravikgupta/affilink/backend/domain"
)

// DefaultBaseURL is the last resort base origin for generated links
const DefaultBaseURL = "https://example.com/aff"

// platformCodes maps every platform to its wire short code. The codes are
// part of the generated URL contract: changing one breaks parsing of every
// previously issued link.
var platformCodes = map[domain.Platform]string{
	domain.PlatformWhatsApp:  "wa",
	domain.PlatformFacebook:  "fb",
	domain.PlatformInstagram: "ig",
	domain.PlatformTelegram:  "tg",
	domain.PlatformEmail:     "em",
	domain.PlatformSMS:       "sms",
	domain.PlatformCustom:    "custom",
}

// ShortCode returns the wire short code of a platform. The mapping is total
// over the platform enumeration; unknown values fall back to the custom code.
func ShortCode(p domain.Platform) string {
	if code, ok := platformCodes[p]; ok {
		return code
	}
	return platformCodes[domain.PlatformCustom]
}

// PlatformFromCode returns the platform a wire short code stands for
func PlatformFromCode(code string) (domain.Platform, bool) {
	for p, c := range platformCodes {
		if c == code {
			return p, true
		}
	}
	return "", false
}

// Params holds everything that is encoded into an affiliate URL
type Params struct {
	UserID             string
	Platform           domain.Platform
	DestinationURL     string
	ExpiryUnix         int64
	CommissionPercent  float64
	CustomPlatformName string
}

// ResolveBaseURL resolves the base origin of generated links. Precedence:
// origin provided at runtime, then the configured override, then
// DefaultBaseURL.
func ResolveBaseURL(runtimeOrigin, configured string) string {
	if runtimeOrigin != "" {
		return runtimeOrigin
	}
	if configured != "" {
		return configured
	}
	return DefaultBaseURL
}

// escapeComponent percent-encodes a query value per RFC 3986. QueryEscape
// alone emits "+" for spaces, which a strict percent-decoder reads as a
// literal plus; previously issued links carry "%20", so the "+" form would
// diverge byte-for-byte from them.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Encode serializes params into the canonical affiliate URL
// {base}/{userId}?p={code}&d={dest}&e={expiry}&c={commission}[&cn={name}].
// Query parameter order is fixed. The cn parameter is present if and only if
// the platform is Custom and a custom name was supplied. Encode never fails:
// range and scheme validation is the caller's job.
func Encode(p Params, baseURL string) string {
	code := ShortCode(p.Platform)
	dest := escapeComponent(p.DestinationURL)
	commission := strconv.FormatFloat(p.CommissionPercent, 'f', -1, 64)

	link := fmt.Sprintf("%s/%s?p=%s&d=%s&e=%d&c=%s", baseURL, p.UserID, code, dest, p.ExpiryUnix, commission)

	if p.Platform == domain.PlatformCustom && p.CustomPlatformName != "" {
		link += "&cn=" + escapeComponent(p.CustomPlatformName)
	}

	return link
}

// Decode parses a URL produced by Encode back into its parameter set
func Decode(rawURL string) (Params, error) {
	var p Params

	u, err := url.Parse(rawURL)
	if err != nil {
		return p, fmt.Errorf("can't parse affiliate URL: %w", err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 || segments[len(segments)-1] == "" {
		return p, fmt.Errorf("affiliate URL has no user id segment")
	}
	p.UserID = segments[len(segments)-1]

	q := u.Query()
	platform, ok := PlatformFromCode(q.Get("p"))
	if !ok {
		return p, fmt.Errorf("unknown platform code %q", q.Get("p"))
	}
	p.Platform = platform
	p.DestinationURL = q.Get("d")
	p.CustomPlatformName = q.Get("cn")

	p.ExpiryUnix, err = strconv.ParseInt(q.Get("e"), 10, 64)
	if err != nil {
		return p, fmt.Errorf("can't parse expiry %q: %w", q.Get("e"), err)
	}

	p.CommissionPercent, err = strconv.ParseFloat(q.Get("c"), 64)
	if err != nil {
		return p, fmt.Errorf("can't parse commission %q: %w", q.Get("c"), err)
	}

	return p, nil
}

// IsValidDestination reports whether s is an absolute URL with the http or
// https scheme. Malformed input yields false, never an error.
func IsValidDestination(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// TruncateURL shortens a URL for display. Input longer than max is cut to
// max characters and suffixed with an ellipsis marker.
func TruncateURL(link string, max int) string {
	if len(link) <= max {
		return link
	}
	return link[:max] + "..."
}
