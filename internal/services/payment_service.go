package services

import (
	"context"
	"strings"
	"time"
	"unicode"
)

const (
	TestCardNumber = "4111111111111111"
	PaymentAmount  = 2500
)

type PaymentResult struct {
	TransactionID string
	Amount        int
}

// PaymentService simulates a card charge. Only the test card is accepted.
type PaymentService struct {
	delay time.Duration
	now   func() time.Time
	idGen func(prefix string, t time.Time) string
	after func(d time.Duration) <-chan time.Time
}

func NewPaymentService(delay time.Duration) *PaymentService {
	return &PaymentService{
		delay: delay,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: millisID,
		after: time.After,
	}
}

// Process validates the card and completes after the configured delay.
func (s *PaymentService) Process(ctx context.Context, cardNumber string) (*PaymentResult, error) {
	if stripSpaces(cardNumber) != TestCardNumber {
		return nil, NewInvalidError("payment.invalid_card")
	}
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.after(s.delay):
		}
	}
	return &PaymentResult{TransactionID: s.idGen("TXN-", s.now()), Amount: PaymentAmount}, nil
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
