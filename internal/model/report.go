package model

const ReportStatusPending = "pending"

// ReportedReview is a user report against a review, queued for moderation.
// The reported review's title and text are denormalized into the report so the
// moderation inbox survives deletion of the underlying review.
type ReportedReview struct {
	ID         string `json:"id"`
	ReviewID   string `json:"review_id"`
	Title      string `json:"title"`
	Review     string `json:"review"`
	Reason     string `json:"reason"`
	ReportedBy string `json:"reported_by"`
	CreatedAt  string `json:"created_at"`
	Status     string `json:"status"`
}
