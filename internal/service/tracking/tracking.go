// Package tracking tags outbound backlinks with campaign parameters.
package tracking

import (
	"errors"
	"fmt"
	"net/url"
)

// Fixed campaign values identifying traffic sent by this product.
const (
	Source   = "repurpose"
	Campaign = "content_repurpose"
)

// ErrInvalidURL is returned for URLs that are not absolute.
var ErrInvalidURL = errors.New("invalid url")

// Track sets utm_source, utm_medium (the channel) and utm_campaign on rawURL,
// then applies overrides on top. Existing values for these keys are replaced,
// so tracking an already tracked URL yields the same parameter set.
func Track(rawURL, channel string, overrides map[string]string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, rawURL)
	}

	q := u.Query()
	q.Set("utm_source", Source)
	q.Set("utm_medium", channel)
	q.Set("utm_campaign", Campaign)
	for k, v := range overrides {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
