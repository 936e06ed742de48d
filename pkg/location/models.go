package location

// Location represents the geographical coordinates of a device
type Location struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64 // Accuracy radius in meters as reported by the provider
}

// AccessPoint is a single Wi-Fi observation used as a geolocation landmark.
type AccessPoint struct {
	MACAddress     string // Colon separated, lower case (e.g. "aa:bb:cc:dd:ee:ff")
	SignalStrength int    // Received signal strength in dBm, usually negative
}
