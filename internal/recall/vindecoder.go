package recall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// DecodedVIN is the identity the decoder resolved from a VIN. Zero-valued
// fields mean the decoder had no answer for that field.
type DecodedVIN struct {
	Make      string
	Model     string
	ModelYear int
}

// VINDecoder resolves vehicle identity from a VIN. Decode failures are
// non-fatal: the lookup falls back to the stored make/model/year.
type VINDecoder interface {
	Decode(ctx context.Context, vin string) (DecodedVIN, error)
}

// HTTPVINDecoder talks to the vPIC DecodeVinValues API.
type HTTPVINDecoder struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

func NewHTTPVINDecoder(baseURL string, timeout time.Duration) *HTTPVINDecoder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPVINDecoder{
		baseURL: baseURL,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

type vinDecodeResponse struct {
	Results []struct {
		Make      string `json:"Make"`
		Model     string `json:"Model"`
		ModelYear string `json:"ModelYear"`
	} `json:"Results"`
}

func (d *HTTPVINDecoder) Decode(ctx context.Context, vin string) (DecodedVIN, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/"+vin+"?format=json", nil)
	if err != nil {
		return DecodedVIN{}, fmt.Errorf("build vin decode request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return DecodedVIN{}, fmt.Errorf("vin decode call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DecodedVIN{}, fmt.Errorf("vin decoder returned %d", resp.StatusCode)
	}

	var payload vinDecodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return DecodedVIN{}, fmt.Errorf("decode vin decoder response: %w", err)
	}
	if len(payload.Results) == 0 {
		return DecodedVIN{}, fmt.Errorf("vin decoder returned no results")
	}

	year, _ := strconv.Atoi(payload.Results[0].ModelYear)
	return DecodedVIN{
		Make:      payload.Results[0].Make,
		Model:     payload.Results[0].Model,
		ModelYear: year,
	}, nil
}
