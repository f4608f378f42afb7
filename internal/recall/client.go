package recall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"curbo/pkg/platform/sentinel"
)

// RegistryClient queries the external recall registry for a vehicle.
type RegistryClient interface {
	RecallsByVehicle(ctx context.Context, vehicleMake, vehicleModel string, modelYear int) ([]Record, error)
}

// HTTPRegistryClient talks to the NHTSA recalls-by-vehicle API. Every call
// carries its own timeout, independent of the caller's deadline, so a slow
// upstream never hangs a request indefinitely.
type HTTPRegistryClient struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

func NewHTTPRegistryClient(baseURL string, timeout time.Duration) *HTTPRegistryClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPRegistryClient{
		baseURL: baseURL,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// registryResponse mirrors the upstream payload. Model year arrives as a
// string and is parsed best-effort.
type registryResponse struct {
	Count   int `json:"Count"`
	Results []struct {
		Manufacturer       string `json:"Manufacturer"`
		CampaignNumber     string `json:"NHTSACampaignNumber"`
		ReportReceivedDate string `json:"ReportReceivedDate"`
		Component          string `json:"Component"`
		Summary            string `json:"Summary"`
		Consequence        string `json:"Consequence"`
		Remedy             string `json:"Remedy"`
		Notes              string `json:"Notes"`
		ModelYear          string `json:"ModelYear"`
		Make               string `json:"Make"`
		Model              string `json:"Model"`
	} `json:"results"`
}

func (c *HTTPRegistryClient) RecallsByVehicle(ctx context.Context, vehicleMake, vehicleModel string, modelYear int) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("make", vehicleMake)
	q.Set("model", vehicleModel)
	q.Set("modelYear", strconv.Itoa(modelYear))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build recall registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recall registry call failed: %w", sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, sentinel.ErrUpstreamRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("recall registry returned %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}

	var payload registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode recall registry response: %w", sentinel.ErrUnavailable)
	}

	records := make([]Record, 0, len(payload.Results))
	for _, r := range payload.Results {
		year, _ := strconv.Atoi(r.ModelYear)
		records = append(records, Record{
			CampaignNumber:     r.CampaignNumber,
			Make:               r.Make,
			Model:              r.Model,
			ModelYear:          year,
			Manufacturer:       r.Manufacturer,
			ReportReceivedDate: r.ReportReceivedDate,
			Component:          r.Component,
			Summary:            r.Summary,
			Consequence:        r.Consequence,
			Remedy:             r.Remedy,
			Notes:              r.Notes,
		})
	}
	return records, nil
}
