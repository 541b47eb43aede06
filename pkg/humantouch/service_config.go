package humantouch

import (
	"context"
	"fmt"
	"net/http"
)

// ServiceConfig fetches the service's limits and capabilities.
func (c *Client) ServiceConfig(ctx context.Context) (*ServiceConfig, error) {
	data, err := c.do(ctx, http.MethodGet, APIPrefix+"/async", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get service config: %w", err)
	}

	m, err := dataObject(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode service config: %w", err)
	}

	var cfg ServiceConfig
	if err := decodeInto(m, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode service config: %w", err)
	}
	return &cfg, nil
}
