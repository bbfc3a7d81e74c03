package app

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/pscheid92/reviewpulse/internal/domain"
)

// DecodeSubmission parses a request body into a ReviewSubmission. When
// base64Encoded is set the body is base64 text wrapping the JSON document,
// as API Gateway delivers binary-safe payloads.
//
// Keys are matched exactly: "Name" or "EMAIL" do not fill a field.
func DecodeSubmission(payload []byte, base64Encoded bool) (domain.ReviewSubmission, error) {
	if base64Encoded {
		decoded := make([]byte, base64.StdEncoding.DecodedLen(len(payload)))
		n, err := base64.StdEncoding.Decode(decoded, payload)
		if err != nil {
			return domain.ReviewSubmission{}, fmt.Errorf("%w: base64: %w", domain.ErrMalformedSubmission, err)
		}
		payload = decoded[:n]
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return domain.ReviewSubmission{}, fmt.Errorf("%w: json: %w", domain.ErrMalformedSubmission, err)
	}

	var submission domain.ReviewSubmission
	targets := []struct {
		key string
		dst *string
	}{
		{"name", &submission.Name},
		{"email", &submission.Email},
		{"review", &submission.Review},
	}
	for _, f := range targets {
		raw, ok := fields[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return domain.ReviewSubmission{}, fmt.Errorf("%w: field %q: %w", domain.ErrMalformedSubmission, f.key, err)
		}
	}
	return submission, nil
}
