package types

// Stats summarizes the store contents for the stats endpoint.
type Stats struct {
	TotalFeatures int               `json:"total_features"`
	TotalVotes    int               `json:"total_votes"`
	TopFeature    *FeatureWithCount `json:"top_feature,omitempty"`
}
