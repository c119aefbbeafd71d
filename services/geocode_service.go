package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/techagentng/ecotrack/config"
)

const defaultGeocodeBaseURL = "https://maps.googleapis.com"

// GeocodeService resolves free-text queries to a formatted address, used
// only to populate a report's location field. A failed lookup returns an
// empty string so the field is simply left blank.
type GeocodeService interface {
	SearchAddress(ctx context.Context, query string) (string, error)
}

type geocodeService struct {
	Config  *config.Config
	client  *http.Client
	baseURL string
}

func NewGeocodeService(conf *config.Config) GeocodeService {
	return &geocodeService{
		Config:  conf,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultGeocodeBaseURL,
	}
}

type geocodeResponse struct {
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status string `json:"status"`
}

func (s *geocodeService) SearchAddress(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", nil
	}

	endpoint := fmt.Sprintf("%s/maps/api/geocode/json?address=%s&key=%s",
		strings.TrimRight(s.baseURL, "/"), url.QueryEscape(query), s.Config.GoogleMapsApiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("SearchAddress request error: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	var geocoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geocoded); err != nil {
		log.Printf("SearchAddress decode error: %v", err)
		return "", err
	}
	if geocoded.Status != "OK" || len(geocoded.Results) == 0 {
		log.Printf("SearchAddress no results for %q: %s", query, geocoded.Status)
		return "", nil
	}

	return geocoded.Results[0].FormattedAddress, nil
}
