package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"servicehub/models"

	"go.uber.org/zap"
)

// NominatimGeocoder is the primary reverse geocoder (OpenStreetMap data).
type NominatimGeocoder struct {
	BaseURL string
	HTTP    *http.Client
}

func NewNominatimGeocoder(baseURL string) *NominatimGeocoder {
	return &NominatimGeocoder{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

type nominatimResponse struct {
	Address struct {
		Road    string `json:"road"`
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

func (g *NominatimGeocoder) Reverse(ctx context.Context, lat, lon float64) (*models.GeoLocation, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("format", "jsonv2")

	endpoint := g.BaseURL + "/reverse?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	// Nominatim usage policy requires an identifying UA.
	req.Header.Set("User-Agent", "servicehub/1.0")

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var nr nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, err
	}
	city := nr.Address.City
	if city == "" {
		city = nr.Address.Town
	}
	if city == "" {
		city = nr.Address.Village
	}
	return &models.GeoLocation{
		Latitude:   lat,
		Longitude:  lon,
		City:       city,
		State:      nr.Address.State,
		Country:    nr.Address.Country,
		StreetName: nr.Address.Road,
		Detected:   true,
	}, nil
}

// BigDataCloudGeocoder is the documented fallback; its reverse endpoint is
// keyless, like the primary.
type BigDataCloudGeocoder struct {
	BaseURL string
	HTTP    *http.Client
}

func NewBigDataCloudGeocoder(baseURL string) *BigDataCloudGeocoder {
	return &BigDataCloudGeocoder{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

type bdcResponse struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
}

func (g *BigDataCloudGeocoder) Reverse(ctx context.Context, lat, lon float64) (*models.GeoLocation, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("localityLanguage", "en")

	endpoint := g.BaseURL + "/data/reverse-geocode-client?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bigdatacloud returned status %d", resp.StatusCode)
	}

	var br bdcResponse
	if err := json.NewDecoder(resp.Body).Decode(&br); err != nil {
		return nil, err
	}
	city := br.City
	if city == "" {
		city = br.Locality
	}
	return &models.GeoLocation{
		Latitude:  lat,
		Longitude: lon,
		City:      city,
		State:     br.PrincipalSubdivision,
		Country:   br.CountryName,
		Detected:  true,
	}, nil
}

// ChainGeocoder tries the primary and falls back to the secondary.
type ChainGeocoder struct {
	Primary  ReverseGeocoder
	Fallback ReverseGeocoder
	Logger   *zap.Logger
}

func (g *ChainGeocoder) Reverse(ctx context.Context, lat, lon float64) (*models.GeoLocation, error) {
	loc, err := g.Primary.Reverse(ctx, lat, lon)
	if err == nil {
		return loc, nil
	}
	g.Logger.Warn("Primary reverse geocoder failed, trying fallback", zap.Error(err))
	if g.Fallback == nil {
		return nil, err
	}
	return g.Fallback.Reverse(ctx, lat, lon)
}
