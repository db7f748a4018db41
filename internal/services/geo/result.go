package geo

// Result holds the geolocation lookup result for a single input.
type Result struct {
	Input   string  `json:"input"`
	Country string  `json:"country,omitempty"`
	Region  string  `json:"region,omitempty"`
	City    string  `json:"city,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lon     float64 `json:"lon,omitempty"`
	ISP     string  `json:"isp,omitempty"`
	Org     string  `json:"org,omitempty"`
	AS      string  `json:"as,omitempty"`
}

// IsEmpty reports whether the lookup produced no location data.
func (r *Result) IsEmpty() bool {
	return r.Country == "" && r.Region == "" && r.City == "" &&
		r.Lat == 0 && r.Lon == 0 && r.ISP == "" && r.Org == "" && r.AS == ""
}
