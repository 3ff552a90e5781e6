package model

// LandlordRequest is a user-submitted request to add a landlord, held until an
// admin approves or denies it. The id is generated by the store.
type LandlordRequest struct {
	ID            int        `json:"id,omitempty"`
	LandlordName  string     `json:"landlord_name"`
	LandlordEmail string     `json:"landlord_email"`
	LandlordPhone string     `json:"landlord_phone"`
	UserName      string     `json:"user_name"`
	UserEmail     string     `json:"user_email"`
	Details       string     `json:"details"`
	Properties    []Property `json:"properties"`
	CreatedAt     string     `json:"created_at,omitempty"`
}
