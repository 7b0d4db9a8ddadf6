package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/observability"
	"github.com/sfsergim/CivicReport/internal/repository"
	"github.com/sfsergim/CivicReport/internal/utils"
	"go.uber.org/zap"
)

// OtpLimiter decides whether another OTP may be issued for a phone
type OtpLimiter interface {
	Allow(ctx context.Context, phone string) bool
}

// AuthConfig configures OTP issuance
type AuthConfig struct {
	OtpSecret string
	OtpTTL    time.Duration
	// ExposeOtp returns the generated code in the response (non-production only)
	ExposeOtp bool
}

// AuthService implements phone + OTP authentication
type AuthService struct {
	repo         repository.Repository
	tokens       *TokenService
	limiter      OtpLimiter
	cfg          AuthConfig
	logger       *logging.SafeLogger
	now          func() time.Time
	generateCode func() (string, error)
}

func NewAuthService(repo repository.Repository, tokens *TokenService, limiter OtpLimiter, cfg AuthConfig, logger *logging.SafeLogger) *AuthService {
	return &AuthService{
		repo:         repo,
		tokens:       tokens,
		limiter:      limiter,
		cfg:          cfg,
		logger:       logger.Named("auth"),
		now:          time.Now,
		generateCode: GenerateOtpCode,
	}
}

// GenerateOtpCode returns a uniformly random 6-digit code
func GenerateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// HashOtp returns the hex SHA-256 of "code:secret"
func HashOtp(code, secret string) string {
	sum := sha256.Sum256([]byte(code + ":" + secret))
	return hex.EncodeToString(sum[:])
}

// RequestOtp upserts the user for the phone and issues a new code
func (s *AuthService) RequestOtp(ctx context.Context, req models.RequestOtpRequest) (*models.RequestOtpResponse, error) {
	phone := utils.NormalizePhone(req.Phone)
	if phone == "" {
		return nil, models.InvalidInput(models.CodePhoneRequired)
	}

	logger := s.logger.With(zap.String("phone", observability.MaskPhone(phone)))

	if s.limiter != nil && !s.limiter.Allow(ctx, phone) {
		observability.OtpRequests.WithLabelValues("rate_limited").Inc()
		logger.Warn("otp request rate limited")
		return nil, models.TooManyRequests(models.CodeOtpRateLimited)
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	otp := &models.OtpCode{
		ID:        utils.NewID(),
		Phone:     phone,
		OtpHash:   HashOtp(code, s.cfg.OtpSecret),
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.OtpTTL),
	}

	if _, err := s.repo.IssueOtp(ctx, phone, strings.TrimSpace(req.Name), otp); err != nil {
		observability.OtpRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to issue otp: %w", err)
	}

	observability.OtpRequests.WithLabelValues("sent").Inc()
	logger.Info("otp issued")

	resp := &models.RequestOtpResponse{Message: "otp_sent"}
	if s.cfg.ExposeOtp {
		resp.OtpCode = code
	}
	return resp, nil
}

// VerifyOtp consumes a matching code and issues a token
func (s *AuthService) VerifyOtp(ctx context.Context, req models.VerifyOtpRequest) (*models.VerifyOtpResponse, error) {
	phone := utils.NormalizePhone(req.Phone)
	code := strings.TrimSpace(req.Otp)
	if phone == "" || code == "" {
		return nil, models.InvalidInput(models.CodePhoneAndOtpRequired)
	}

	logger := s.logger.With(zap.String("phone", observability.MaskPhone(phone)))

	if _, err := s.repo.ConsumeOtp(ctx, phone, HashOtp(code, s.cfg.OtpSecret), s.now().UTC()); err != nil {
		if errors.Is(err, models.ErrNoDocument) {
			observability.OtpVerifications.WithLabelValues("rejected").Inc()
			logger.Info("otp verification rejected")
			return nil, models.Unauthorized(models.CodeInvalidOtp)
		}
		observability.OtpVerifications.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to consume otp: %w", err)
	}

	user, err := s.repo.GetUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, models.ErrNoDocument) {
			observability.OtpVerifications.WithLabelValues("rejected").Inc()
			return nil, models.Unauthorized(models.CodeUserNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	observability.OtpVerifications.WithLabelValues("verified").Inc()
	logger.Info("otp verified", zap.String("user_id", user.ID))

	return &models.VerifyOtpResponse{Token: token, User: user.ToResponse()}, nil
}
