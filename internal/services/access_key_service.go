package services

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
	"time"
)

const (
	accessKeyPrefix   = "EC01-"
	accessKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	accessKeyValidity = 3 // calendar months
)

var accessKeyPattern = regexp.MustCompile(`^EC01-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

// AccessKeyService issues and checks registration keys. It is stateless:
// issued keys are not recorded, so uniqueness is not guaranteed and expiry is
// reported but never enforced.
type AccessKeyService struct {
	now       func() time.Time
	randIndex func(n int) int
}

func NewAccessKeyService() *AccessKeyService {
	return &AccessKeyService{
		now:       func() time.Time { return time.Now().UTC() },
		randIndex: cryptoIndex,
	}
}

func cryptoIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand does not fail on supported platforms.
		panic(err)
	}
	return int(v.Int64())
}

// Generate builds a key of the form EC01-XXXX-XXXX that expires three
// calendar months after issue. Day overflow rolls forward (Nov 30 -> Mar 2).
func (s *AccessKeyService) Generate() AccessKey {
	var b strings.Builder
	b.Grow(len(accessKeyPrefix) + 9)
	b.WriteString(accessKeyPrefix)
	for i := 0; i < 8; i++ {
		if i == 4 {
			b.WriteByte('-')
		}
		b.WriteByte(accessKeyAlphabet[s.randIndex(len(accessKeyAlphabet))])
	}
	issued := s.now()
	return AccessKey{
		Value:     b.String(),
		IssuedAt:  issued,
		ExpiresAt: issued.AddDate(0, accessKeyValidity, 0),
	}
}

// ValidateAccessKey reports whether candidate has the key grammar. It does
// not look at expiry.
func ValidateAccessKey(candidate string) bool {
	return accessKeyPattern.MatchString(candidate)
}

// Validate is ValidateAccessKey bound to the service.
func (s *AccessKeyService) Validate(candidate string) bool {
	return ValidateAccessKey(candidate)
}

// FormatTimestamp renders t as ISO-8601 UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
