// Package validate checks user-registered targets before they reach the
// database. The portal and admin console create targets on behalf of
// clients, so URLs arrive untrusted.
package validate

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// AllowedIntervals is the fixed set of per-target check intervals, in
// minutes, offered by the portal UI.
var AllowedIntervals = []int{1, 5, 15, 60}

const maxURLLength = 2048

// Target validates a check URL and interval. The URL must carry an
// http or https scheme and a resolvable-looking host; internationalized
// hostnames are accepted if they normalize to punycode.
func Target(rawURL string, intervalMins int) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("url is required")
	}
	if len(rawURL) > maxURLLength {
		return fmt.Errorf("url must be at most %d characters", maxURLLength)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https")
	}
	if u.Hostname() == "" {
		return fmt.Errorf("url host is required")
	}
	if err := validateHost(u.Hostname()); err != nil {
		return err
	}

	if !IntervalAllowed(intervalMins) {
		return fmt.Errorf("check interval must be one of: %s", intervalList())
	}
	return nil
}

// IntervalAllowed reports whether mins is one of AllowedIntervals.
func IntervalAllowed(mins int) bool {
	for _, v := range AllowedIntervals {
		if v == mins {
			return true
		}
	}
	return false
}

func validateHost(host string) error {
	if net.ParseIP(host) != nil {
		return nil
	}
	if _, err := idna.Lookup.ToASCII(host); err != nil {
		return fmt.Errorf("invalid hostname %q: %w", host, err)
	}
	return nil
}

func intervalList() string {
	parts := make([]string, len(AllowedIntervals))
	for i, v := range AllowedIntervals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
