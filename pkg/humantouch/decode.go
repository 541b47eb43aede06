package humantouch

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mitchellh/mapstructure"
)

var errEmptyData = errors.New("response data is empty")

func decodeEnvelope(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &env, nil
}

// dataObject unmarshals an envelope payload that must be a JSON object.
func dataObject(data json.RawMessage) (map[string]interface{}, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil, errEmptyData
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("response data is not an object: %w", err)
	}
	return m, nil
}

// requireKeys fails when any of keys is absent from m.
func requireKeys(m map[string]interface{}, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// decodeInto converts a generic JSON value into out using json tags.
// Timestamps are parsed leniently.
func decodeInto(input interface{}, out interface{}) error {
	return decodeWith(input, out, false)
}

// decodeStrict is decodeInto but fails on unknown or missing fields.
func decodeStrict(input interface{}, out interface{}) error {
	return decodeWith(input, out, true)
}

func decodeWith(input interface{}, out interface{}, strict bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      out,
		ErrorUnused: strict,
		ErrorUnset:  strict,
		DecodeHook:  timestampHook,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	return dec.Decode(input)
}

var timeType = reflect.TypeOf(time.Time{})

// timestampHook parses strings into time.Time with dateparse. Empty strings
// decode as absent.
func timestampHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	if to != timeType && !(to.Kind() == reflect.Ptr && to.Elem() == timeType) {
		return data, nil
	}

	s := strings.TrimSpace(reflect.ValueOf(data).String())
	if s == "" {
		if to.Kind() == reflect.Ptr {
			return nil, nil
		}
		return time.Time{}, nil
	}
	if to.Kind() == reflect.Ptr {
		return data, nil
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// decodeScores decodes a detection_scores object, rejecting extra or
// missing detectors.
func decodeScores(input interface{}) (DetectionScores, error) {
	if input == nil {
		return DetectionScores{}, errors.New("invalid detection_scores: value is null")
	}

	var scores DetectionScores
	if err := decodeStrict(input, &scores); err != nil {
		return DetectionScores{}, fmt.Errorf("invalid detection_scores: %w", err)
	}
	return scores, nil
}

// decodeProcessResult decodes a full process result as returned by the
// process endpoint and inside completed task statuses.
func decodeProcessResult(m map[string]interface{}) (*ProcessResponse, error) {
	if err := requireKeys(m,
		"processed_text",
		"original_length",
		"processed_length",
		"detection_scores",
		"processing_time",
		"rounds_used",
	); err != nil {
		return nil, err
	}

	var wire struct {
		ProcessedText   string      `json:"processed_text"`
		OriginalLength  int         `json:"original_length"`
		ProcessedLength int         `json:"processed_length"`
		DetectionScores interface{} `json:"detection_scores"`
		ProcessingTime  float64     `json:"processing_time"`
		RoundsUsed      int         `json:"rounds_used"`
		ModelUsed       string      `json:"model_used"`
		Provider        string      `json:"provider"`
	}
	if err := decodeInto(m, &wire); err != nil {
		return nil, err
	}

	scores, err := decodeScores(wire.DetectionScores)
	if err != nil {
		return nil, err
	}

	return &ProcessResponse{
		ProcessedText:   wire.ProcessedText,
		OriginalLength:  wire.OriginalLength,
		ProcessedLength: wire.ProcessedLength,
		DetectionScores: scores,
		ProcessingTime:  wire.ProcessingTime,
		RoundsUsed:      wire.RoundsUsed,
		ModelUsed:       wire.ModelUsed,
		Provider:        wire.Provider,
	}, nil
}
