package normalizer

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"rankings-api/internal/models"
)

const maxHostnameLength = 253

// Normalizer implements the Service interface
type Normalizer struct {
	labelRegex *regexp.Regexp
	tldRegex   *regexp.Regexp
	aceRegex   *regexp.Regexp
}

// New creates a new domain normalizer
func New() Service {
	return newNormalizer()
}

// newNormalizer creates the concrete implementation
func newNormalizer() *Normalizer {
	return &Normalizer{
		// Each dot-separated label: alphanumeric edges, alphanumeric or hyphen interior
		labelRegex: regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`),
		// Final label: pure-alphabetic TLD of length 2-24
		tldRegex: regexp.MustCompile(`^[a-z]{2,24}$`),
		// Or an internationalized-domain ACE prefix
		aceRegex: regexp.MustCompile(`^xn--[a-z0-9-]{2,}$`),
	}
}

// Normalize reduces arbitrary user input to a canonical hostname: lowercase,
// no scheme, no www. prefix. It is pure and idempotent; normalizing an
// already-canonical domain returns it unchanged.
func (n *Normalizer) Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty input", models.ErrInvalidDomain)
	}

	host, err := n.extractHostname(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidDomain, raw)
	}

	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")

	if !n.isValidHostname(host) {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidDomain, raw)
	}

	return host, nil
}

// extractHostname parses the input as a URL and returns its hostname.
// Inputs without a scheme are treated as hostname candidates.
func (n *Normalizer) extractHostname(input string) (string, error) {
	lower := strings.ToLower(input)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		input = "https://" + input
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return "", err
	}

	host := parsed.Hostname()
	if host == "" {
		return "", fmt.Errorf("no hostname in %q", input)
	}

	return host, nil
}

// isValidHostname checks the syntactic rules for a registrable-looking hostname
func (n *Normalizer) isValidHostname(host string) bool {
	if len(host) > maxHostnameLength {
		return false
	}

	// A top-level domain is required; bare hostnames like "localhost" are rejected
	if !strings.Contains(host, ".") {
		return false
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if label == "" || len(label) > 63 {
			return false
		}
		if !n.labelRegex.MatchString(label) {
			return false
		}
	}

	tld := labels[len(labels)-1]
	return n.tldRegex.MatchString(tld) || n.aceRegex.MatchString(tld)
}
