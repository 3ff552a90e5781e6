package model

// Landlord is the nested representation served to clients: the flat landlords,
// properties and units tables joined by id.
type Landlord struct {
	LandlordID string     `json:"landlord_id"`
	Name       string     `json:"name"`
	Contact    Contact    `json:"contact"`
	Properties []Property `json:"properties"`
}

type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Property struct {
	PropertyID string  `json:"property_id"`
	Address    Address `json:"address"`
	Units      []Unit  `json:"unit_details"`
}

type Address struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
}

type Unit struct {
	UnitNumber string  `json:"unit_number"`
	Bedrooms   int     `json:"bedrooms"`
	Bathrooms  float64 `json:"bathrooms"`
	Rent       int     `json:"rent"`
}

// LandlordStats are table counts for the stats endpoint.
type LandlordStats struct {
	Landlords  int `json:"landlords"`
	Properties int `json:"properties"`
	Units      int `json:"units"`
}

// LeaderboardEntry is one row of the rating leaderboard.
type LeaderboardEntry struct {
	LandlordID  string  `json:"landlord_id"`
	Name        string  `json:"name"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
}
