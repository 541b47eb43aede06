package humantouch

import (
	"context"
	"fmt"
	"net/http"
)

type validateRequest struct {
	Text      string   `json:"text"`
	Detectors []string `json:"detectors,omitempty"`
}

// Validate scores text with the named detectors, or every detector when
// none are given. Order of detectors is preserved on the wire.
func (c *Client) Validate(ctx context.Context, text string, detectors ...string) (*ValidateResponse, error) {
	if err := validateText(text); err != nil {
		return nil, newValidationError(fmt.Errorf("text: %w", err))
	}
	if err := validateDetectors(detectors); err != nil {
		return nil, newValidationError(fmt.Errorf("detectors: %w", err))
	}

	data, err := c.do(ctx, http.MethodPost, APIPrefix+"/validate", validateRequest{Text: text, Detectors: detectors}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to validate text: %w", err)
	}

	resp, err := decodeValidate(data, text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode validate response: %w", err)
	}
	return resp, nil
}

// decodeValidate falls back to the submitted text when the service does not
// echo it. Null scores, which the service reports for summaries it cannot
// compute from a subset of detectors, are dropped rather than read as zero.
func decodeValidate(data []byte, text string) (*ValidateResponse, error) {
	m, err := dataObject(data)
	if err != nil {
		return nil, err
	}
	if err := requireKeys(m, "detection_scores", "summary"); err != nil {
		return nil, err
	}

	var wire struct {
		Text            *string             `json:"text"`
		DetectionScores map[string]*float64 `json:"detection_scores"`
		Summary         map[string]*float64 `json:"summary"`
	}
	if err := decodeInto(m, &wire); err != nil {
		return nil, err
	}

	resp := &ValidateResponse{
		Text:            text,
		DetectionScores: presentScores(wire.DetectionScores),
		Summary:         presentScores(wire.Summary),
	}
	if wire.Text != nil {
		resp.Text = *wire.Text
	}
	return resp, nil
}

func presentScores(in map[string]*float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for name, score := range in {
		if score != nil {
			out[name] = *score
		}
	}
	return out
}
