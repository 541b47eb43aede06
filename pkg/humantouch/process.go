package humantouch

import (
	"context"
	"fmt"
	"net/http"
	"unicode/utf8"
)

type processRequest struct {
	Text    string          `json:"text"`
	Options *ProcessOptions `json:"options,omitempty"`
}

type batchRequest struct {
	Texts   []string        `json:"texts"`
	Options *ProcessOptions `json:"options,omitempty"`
}

// prepareOptions applies defaults and validates. A nil opts stays nil so the
// server applies its own defaults.
func prepareOptions(opts *ProcessOptions) (*ProcessOptions, error) {
	if opts == nil {
		return nil, nil
	}
	o := opts.withDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Process rewrites text synchronously.
func (c *Client) Process(ctx context.Context, text string, opts *ProcessOptions) (*ProcessResponse, error) {
	if err := validateText(text); err != nil {
		return nil, newValidationError(fmt.Errorf("text: %w", err))
	}
	options, err := prepareOptions(opts)
	if err != nil {
		return nil, newValidationError(fmt.Errorf("options: %w", err))
	}

	data, err := c.do(ctx, http.MethodPost, APIPrefix+"/process", processRequest{Text: text, Options: options}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to process text: %w", err)
	}

	m, err := dataObject(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode process response: %w", err)
	}
	result, err := decodeProcessResult(m)
	if err != nil {
		return nil, fmt.Errorf("failed to decode process response: %w", err)
	}

	return result, nil
}

// Batch rewrites up to MaxBatchSize texts in one call. Item lengths are
// counted client-side in characters; per-item timing and rounds are not
// reported by the service and are left zero.
func (c *Client) Batch(ctx context.Context, texts []string, opts *ProcessOptions) (*BatchResponse, error) {
	if err := validateTexts(texts); err != nil {
		return nil, newValidationError(err)
	}
	options, err := prepareOptions(opts)
	if err != nil {
		return nil, newValidationError(fmt.Errorf("options: %w", err))
	}

	data, err := c.do(ctx, http.MethodPost, APIPrefix+"/batch", batchRequest{Texts: texts, Options: options}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to process batch: %w", err)
	}

	resp, err := decodeBatch(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", err)
	}

	c.logger.Debug("batch processed",
		"texts", len(texts),
		"results", len(resp.Results),
		"total_time", resp.TotalTime,
	)

	return resp, nil
}

func decodeBatch(data []byte) (*BatchResponse, error) {
	m, err := dataObject(data)
	if err != nil {
		return nil, err
	}
	if err := requireKeys(m, "results", "total_processed", "total_time"); err != nil {
		return nil, err
	}

	var wire struct {
		Results        []map[string]interface{} `json:"results"`
		TotalProcessed int                      `json:"total_processed"`
		TotalTime      float64                  `json:"total_time"`
	}
	if err := decodeInto(m, &wire); err != nil {
		return nil, err
	}

	results := make([]ProcessResponse, 0, len(wire.Results))
	for i, item := range wire.Results {
		if err := requireKeys(item, "original_text", "processed_text", "detection_scores"); err != nil {
			return nil, fmt.Errorf("results[%d]: %w", i, err)
		}

		var entry struct {
			OriginalText    string      `json:"original_text"`
			ProcessedText   string      `json:"processed_text"`
			DetectionScores interface{} `json:"detection_scores"`
		}
		if err := decodeInto(item, &entry); err != nil {
			return nil, fmt.Errorf("results[%d]: %w", i, err)
		}

		scores, err := decodeScores(entry.DetectionScores)
		if err != nil {
			return nil, fmt.Errorf("results[%d]: %w", i, err)
		}

		results = append(results, ProcessResponse{
			ProcessedText:   entry.ProcessedText,
			OriginalLength:  utf8.RuneCountInString(entry.OriginalText),
			ProcessedLength: utf8.RuneCountInString(entry.ProcessedText),
			DetectionScores: scores,
		})
	}

	return &BatchResponse{
		Results:        results,
		TotalProcessed: wire.TotalProcessed,
		TotalTime:      wire.TotalTime,
	}, nil
}
