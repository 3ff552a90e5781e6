package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/tenantlens/tenantlens/internal/metrics"
	"github.com/tenantlens/tenantlens/internal/model"
)

// VerificationService tracks pending email verifications in memory. Codes
// live for a fixed TTL and a signup consumes the verified entry exactly once.
type VerificationService struct {
	sender EmailSender
	ttl    time.Duration

	mu      sync.Mutex
	pending map[string]model.PendingVerification

	now func() time.Time
}

func NewVerificationService(sender EmailSender, ttl time.Duration) *VerificationService {
	return &VerificationService{
		sender:  sender,
		ttl:     ttl,
		pending: make(map[string]model.PendingVerification),
		now:     time.Now,
	}
}

// Issue generates a fresh code, emails it, and only then records it. A failed
// send leaves any previous pending entry untouched.
func (s *VerificationService) Issue(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate verification code: %w", err)
	}

	if err := s.sender.SendVerificationCode(ctx, email, code); err != nil {
		metrics.VerificationEmailFailed()
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	metrics.VerificationEmailSent()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[email] = model.PendingVerification{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Confirm checks the submitted code against the pending entry. An expired
// entry is removed; a mismatched code keeps the entry so the user can retry.
func (s *VerificationService) Confirm(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.pending[email]
	if !ok {
		return ErrVerificationNotFound
	}
	if entry.IsExpired(s.now()) {
		delete(s.pending, email)
		return ErrCodeExpired
	}
	if entry.Code != code {
		return ErrCodeMismatch
	}

	entry.Verified = true
	s.pending[email] = entry
	return nil
}

// Consume atomically removes a verified, unexpired entry. It fails when the
// email was never confirmed, so two concurrent signups for the same address
// can only consume it once.
func (s *VerificationService) Consume(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.pending[email]
	if !ok || !entry.Verified || entry.IsExpired(s.now()) {
		return ErrVerificationRequired
	}

	delete(s.pending, email)
	return nil
}

// generateCode returns a uniformly random 6-digit code, zero padded.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
