package models

// Coordinates is a raw lat/lon pair from the device or the frontend.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoLocation is a reverse-geocoded user position. Detected is false when
// acquisition timed out or was denied; the rest of the flow must still work
// with a manual location string in that case.
type GeoLocation struct {
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	City       string  `json:"city,omitempty"`
	State      string  `json:"state,omitempty"`
	Country    string  `json:"country,omitempty"`
	StreetName string  `json:"streetName,omitempty"`
	Detected   bool    `json:"detected"`
}
