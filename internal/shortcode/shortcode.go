// Package shortcode derives compact codes for long URLs.
package shortcode

import (
	"fmt"

	"github.com/speps/go-hashids/v2"
)

// seed is the fixed value every code encodes; the long URL itself acts as the
// hashids salt, so the same URL always produces the same code.
const seed = 123456

// Generate returns the short code for longURL. Deterministic: repeated calls
// with the same URL, in any process, yield the same code. Distinct URLs are
// expected but not guaranteed to yield distinct codes; callers dedupe by the
// long URL before generating, and no uniqueness constraint exists on codes.
func Generate(longURL string) (string, error) {
	data := hashids.NewData()
	data.Salt = longURL

	encoder, err := hashids.NewWithData(data)
	if err != nil {
		return "", fmt.Errorf("init encoder: %w", err)
	}

	code, err := encoder.Encode([]int{seed})
	if err != nil {
		return "", fmt.Errorf("encode short code: %w", err)
	}
	return code, nil
}
