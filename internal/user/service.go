// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bazario/bazario-api/internal/core"
	"github.com/bazario/bazario-api/internal/middleware"
)

// TokenIssuer abstracts the session manager so the service can be tested
// without key material on disk.
type TokenIssuer interface {
	CreateSessionToken(userID string) (string, error)
}

type Service struct {
	repo      Repository
	tokens    TokenIssuer
	otpExpire time.Duration
}

func NewService(
	repo Repository,
	tokens TokenIssuer,
	otpExpire time.Duration,
) *Service {
	return &Service{
		repo:      repo,
		tokens:    tokens,
		otpExpire: otpExpire,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*User, error) {
	exists, err := s.repo.ExistsByPhone(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, fmt.Errorf("register: %w", core.ErrDuplicateKey)
	}

	user := &User{
		ID:          uuid.New().String(),
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	}

	if req.Email != "" {
		email := req.Email
		user.Email = &email
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Login(
	ctx context.Context,
	phoneNumber string,
) (*User, string, error) {
	user, err := s.repo.GetByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.CreateSessionToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session token: %w", err)
	}

	return user, token, nil
}

// IssueOTP stores a hash of a fresh 6-digit code on the account and returns
// the plaintext so the caller can hand it to the delivery channel. The code
// is intentionally echoed in the API response for now, matching the current
// client contract.
func (s *Service) IssueOTP(
	ctx context.Context,
	phoneNumber string,
) (string, error) {
	user, err := s.repo.GetByPhone(ctx, phoneNumber)
	if err != nil {
		return "", err
	}

	code, err := core.GenerateOTP()
	if err != nil {
		return "", err
	}

	hash, err := core.HashOTP(code)
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(s.otpExpire)

	if err := s.repo.SetOTP(ctx, user.ID, hash, expiresAt); err != nil {
		return "", err
	}

	return code, nil
}

// VerifyOTP checks the code against the stored hash. The OTP is not consumed
// on success or failure: the stored hash stays valid until its expiry, which
// keeps retries and resends cheap for the client.
func (s *Service) VerifyOTP(
	ctx context.Context,
	phoneNumber, code string,
) error {
	user, err := s.repo.GetByPhone(ctx, phoneNumber)
	if err != nil {
		return err
	}

	if user.OTPHash == nil || user.OTPExpiresAt == nil ||
		time.Now().After(*user.OTPExpiresAt) {
		return fmt.Errorf("verify otp: %w", core.ErrOTPExpired)
	}

	if !core.VerifyOTP(code, *user.OTPHash) {
		return fmt.Errorf("verify otp: %w", core.ErrOTPMismatch)
	}

	return nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// ResolveUser backs the authenticator middleware: a session token for a
// deleted account must not authenticate.
func (s *Service) ResolveUser(
	ctx context.Context,
	userID string,
) (*middleware.SessionUser, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &middleware.SessionUser{
		ID:   user.ID,
		Role: user.Role,
	}, nil
}

var _ middleware.UserResolver = (*Service)(nil)
