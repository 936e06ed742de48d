package models

// LocationResult is the estimated position of a Wi-Fi access point.
type LocationResult struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy"` // Radius in meters
}
