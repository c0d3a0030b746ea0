package services

import (
	"strconv"
	"time"
)

type RegisterRequest struct {
	Name      string
	Email     string
	WhatsApp  string
	AccessKey string
}

type RegisterResult struct {
	UserID string
}

// RegistrationService accepts a participant sign-up gated by an access key.
// Nothing is stored; the key is checked for format only.
type RegistrationService struct {
	keys  *AccessKeyService
	now   func() time.Time
	idGen func(prefix string, t time.Time) string
}

func NewRegistrationService(keys *AccessKeyService) *RegistrationService {
	if keys == nil {
		keys = NewAccessKeyService()
	}
	return &RegistrationService{
		keys:  keys,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: millisID,
	}
}

func millisID(prefix string, t time.Time) string {
	return prefix + strconv.FormatInt(t.UnixMilli(), 10)
}

func (s *RegistrationService) Register(req RegisterRequest) (*RegisterResult, error) {
	if req.Name == "" || req.Email == "" || req.WhatsApp == "" {
		return nil, NewInvalidError("register.fields_required")
	}
	if !s.keys.Validate(req.AccessKey) {
		return nil, NewInvalidError("register.bad_key")
	}
	return &RegisterResult{UserID: s.idGen("USR-", s.now())}, nil
}
