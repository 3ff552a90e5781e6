package model

type Review struct {
	ID         string `json:"id"`
	LandlordID string `json:"landlord_id"`
	Rating     int    `json:"rating"`
	Title      string `json:"title"`
	Review     string `json:"review"`
	CreatedAt  string `json:"created_at"` // RFC3339 UTC
}

// ReviewRating is the slim projection used for leaderboard aggregation.
type ReviewRating struct {
	LandlordID string `json:"landlord_id"`
	Rating     int    `json:"rating"`
}
