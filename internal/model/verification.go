package model

import "time"

// PendingVerification is an in-flight email verification. At most one exists
// per email; a re-request overwrites the previous one.
type PendingVerification struct {
	Email     string
	Code      string // 6 ASCII digits, zero-padded
	ExpiresAt time.Time
	Verified  bool
}

func (p *PendingVerification) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
