package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to   string
	code string
}

func (f *fakeSender) SendVerificationCode(_ context.Context, to, code string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, code: code})
	return nil
}

func newTestVerification(sender *fakeSender) *VerificationService {
	return NewVerificationService(sender, 10*time.Minute)
}

func TestVerificationIssueAndConfirm(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestVerification(sender)

	require.NoError(t, svc.Issue(context.Background(), "a@b.com"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@b.com", sender.sent[0].to)
	assert.Len(t, sender.sent[0].code, 6)

	require.NoError(t, svc.Confirm("a@b.com", sender.sent[0].code))
	require.NoError(t, svc.Consume("a@b.com"))

	// Consumed entries are gone
	assert.ErrorIs(t, svc.Consume("a@b.com"), ErrVerificationRequired)
}

func TestVerificationConfirmUnknownEmail(t *testing.T) {
	svc := newTestVerification(&fakeSender{})

	assert.ErrorIs(t, svc.Confirm("nobody@b.com", "123456"), ErrVerificationNotFound)
}

func TestVerificationConfirmWrongCodeKeepsEntry(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestVerification(sender)

	require.NoError(t, svc.Issue(context.Background(), "a@b.com"))

	assert.ErrorIs(t, svc.Confirm("a@b.com", "000000"), ErrCodeMismatch)

	// The right code still works after a failed attempt
	require.NoError(t, svc.Confirm("a@b.com", sender.sent[0].code))
}

func TestVerificationExpiredCodeRemoved(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestVerification(sender)

	require.NoError(t, svc.Issue(context.Background(), "a@b.com"))

	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	assert.ErrorIs(t, svc.Confirm("a@b.com", sender.sent[0].code), ErrCodeExpired)
	// Expiry removes the entry entirely
	assert.ErrorIs(t, svc.Confirm("a@b.com", sender.sent[0].code), ErrVerificationNotFound)
}

func TestVerificationConsumeRequiresConfirm(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestVerification(sender)

	require.NoError(t, svc.Issue(context.Background(), "a@b.com"))

	// Issued but never confirmed
	assert.ErrorIs(t, svc.Consume("a@b.com"), ErrVerificationRequired)
}

func TestVerificationConsumeExpired(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestVerification(sender)

	require.NoError(t, svc.Issue(context.Background(), "a@b.com"))
	require.NoError(t, svc.Confirm("a@b.com", sender.sent[0].code))

	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	assert.ErrorIs(t, svc.Consume("a@b.com"), ErrVerificationRequired)
}

func TestVerificationDeliveryFailureNoCommit(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	svc := newTestVerification(sender)

	err := svc.Issue(context.Background(), "a@b.com")
	assert.ErrorIs(t, err, ErrDelivery)

	// Nothing was recorded for the address
	assert.ErrorIs(t, svc.Confirm("a@b.com", "123456"), ErrVerificationNotFound)
}

func TestVerificationReissueReplacesCode(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestVerification(sender)

	require.NoError(t, svc.Issue(context.Background(), "a@b.com"))
	require.NoError(t, svc.Issue(context.Background(), "a@b.com"))
	require.Len(t, sender.sent, 2)

	latest := sender.sent[1].code
	require.NoError(t, svc.Confirm("a@b.com", latest))
}
