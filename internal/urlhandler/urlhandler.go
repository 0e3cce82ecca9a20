package urlhandler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL normalizes a URL string, ensuring it has a scheme and a host.
func NormalizeURL(rawURL string) (string, error) {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return "", errors.New("URL is empty or only whitespace")
	}

	// Add scheme if missing
	if !strings.Contains(trimmedURL, "://") && !strings.HasPrefix(trimmedURL, "//") {
		trimmedURL = "http://" + trimmedURL
	}

	parsedURL, err := url.Parse(trimmedURL)
	if err != nil {
		return "", fmt.Errorf("could not parse URL '%s': %w", trimmedURL, err)
	}
	if parsedURL.Host == "" {
		return "", errors.New("URL lacks a valid hostname")
	}

	return parsedURL.String(), nil
}

// ResolveURL resolves a (possibly relative) URL string against a base URL.
// Data and blob URLs are returned unchanged.
func ResolveURL(href string, base *url.URL) (string, error) {
	trimmedHref := strings.TrimSpace(href)
	if trimmedHref == "" {
		return "", fmt.Errorf("href is empty")
	}
	if IsInlineURL(trimmedHref) {
		return trimmedHref, nil
	}

	parsedHref, err := url.Parse(trimmedHref)
	if err != nil {
		return "", fmt.Errorf("error parsing href '%s': %w", trimmedHref, err)
	}
	if base == nil {
		if !parsedHref.IsAbs() {
			return "", fmt.Errorf("cannot process relative URL '%s' without a base URL", trimmedHref)
		}
		return parsedHref.String(), nil
	}
	return base.ResolveReference(parsedHref).String(), nil
}

// IsInlineURL reports whether raw embeds its content rather than pointing at it.
func IsInlineURL(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "blob:")
}

// ValidateURLFormat checks that rawURL is an absolute http(s) URL.
func ValidateURLFormat(rawURL string) error {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return fmt.Errorf("URL is empty")
	}

	parsed, err := url.ParseRequestURI(trimmedURL)
	if err != nil {
		return fmt.Errorf("invalid URL format '%s': %w", trimmedURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme '%s' in '%s'", parsed.Scheme, trimmedURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL '%s' has no host", trimmedURL)
	}
	return nil
}
