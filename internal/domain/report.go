package domain

// Summary is the aggregate report written next to the per-place CSVs.
type Summary struct {
	ProcessingDate        string         `json:"processing_date"`
	TotalPlaces           int            `json:"total_places"`
	PlacesWithCoordinates int            `json:"places_with_coordinates"`
	PlacesWithWebsites    int            `json:"places_with_websites"`
	PlacesWithPhone       int            `json:"places_with_phone"`
	PlacesWithEmail       int            `json:"places_with_email"`
	TypeDistribution      map[string]int `json:"type_distribution"`
	SourceDistribution    map[string]int `json:"source_distribution"`
	OutputDirectory       string         `json:"output_directory"`
}
