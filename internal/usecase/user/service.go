package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainUser "auth-service/internal/domain/user"
	"auth-service/internal/logger"
	"auth-service/internal/mail"
	"auth-service/internal/metrics"
	"auth-service/internal/usecase/reset"
	appErrors "auth-service/pkg/errors"
	"auth-service/pkg/utils"
)

// Throttle limits forgot-password requests per email.
type Throttle interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// Service implements registration, login, token checks and the password
// reset flow.
type Service struct {
	userRepo    domainUser.Repository
	ledger      *reset.Ledger
	hasher      *utils.PasswordHasher
	tokens      *utils.TokenIssuer
	mailer      mail.Sender
	throttle    Throttle
	frontendURL string
	dummyHash   string
}

func NewService(
	userRepo domainUser.Repository,
	ledger *reset.Ledger,
	hasher *utils.PasswordHasher,
	tokens *utils.TokenIssuer,
	mailer mail.Sender,
	frontendURL string,
) (*Service, error) {
	// compared against when the username is unknown, so both login
	// failures pay for one bcrypt comparison
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &Service{
		userRepo:    userRepo,
		ledger:      ledger,
		hasher:      hasher,
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: frontendURL,
		dummyHash:   dummyHash,
	}, nil
}

// WithThrottle enables the forgot-password throttle.
func (s *Service) WithThrottle(t Throttle) *Service {
	s.throttle = t
	return s
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	// only the bcrypt limit applies here; the minimum length is a reset policy
	if err := utils.ValidatePasswordLength(req.Password); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeWeakPassword, err.Error(), nil)
	}

	existingUser, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		logger.Warn("Registration attempt with existing username",
			zap.String("username", req.Username),
			zap.String("event", "registration_failed_duplicate_username"),
		)
		metrics.RecordAuthEvent("registration_failed_duplicate_username")
		return nil, domainUser.ErrDuplicateUsername
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domainUser.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Username:       req.Username,
		Email:          req.Email,
		PasswordHashed: hashedPassword,
		IsActive:       true,
	}

	// a concurrent registration can still win the race; the unique
	// constraint reports it as a duplicate here
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrDuplicateUsername) || errors.Is(err, domainUser.ErrDuplicateEmail) {
			logger.Warn("Registration rejected by unique constraint",
				zap.String("username", req.Username),
				zap.String("event", "registration_failed_duplicate"),
				zap.Error(err),
			)
			metrics.RecordAuthEvent("registration_failed_duplicate")
		}
		return nil, err
	}

	logger.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("event", "user_registered"),
	)
	metrics.RecordAuthEvent("user_registered")

	return ToUserResponse(user), nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, domainUser.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			s.hasher.Verify(req.Password, s.dummyHash)
			logger.Warn("Login attempt with unknown username",
				zap.String("event", "login_failed"),
			)
			metrics.RecordAuthEvent("login_failed")
			return nil, domainUser.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHashed) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed"),
		)
		metrics.RecordAuthEvent("login_failed")
		return nil, domainUser.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.Warn("Login attempt for inactive user",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_inactive_user"),
		)
		metrics.RecordAuthEvent("login_failed")
		return nil, domainUser.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "login_success"),
	)
	metrics.RecordAuthEvent("login_success")

	return &TokenResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

// VerifyToken returns the token subject.
func (s *Service) VerifyToken(_ context.Context, token string) (string, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		logger.Debug("Token verification failed",
			zap.String("event", "token_invalid"),
			zap.Error(err),
		)
		return "", domainUser.ErrInvalidToken
	}
	return claims.Subject, nil
}

// CurrentUser resolves a bearer token to its account. A valid token for a
// deleted account yields ErrUserNotFound.
func (s *Service) CurrentUser(ctx context.Context, token string) (*domainUser.User, error) {
	username, err := s.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByUsername(ctx, username)
}

// ForgotPassword answers with the same message whether or not the email is
// registered. Only store failures surface as errors.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) (*MessageResponse, error) {
	generic := &MessageResponse{Message: ForgotPasswordMessage}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, req.Email)
		switch {
		case err != nil:
			logger.Warn("Forgot password throttle unavailable",
				zap.String("event", "password_reset_throttle_error"),
				zap.Error(err),
			)
		case !allowed:
			logger.Warn("Forgot password throttled",
				zap.String("event", "password_reset_throttled"),
			)
			metrics.RecordAuthEvent("password_reset_throttled")
			return generic, nil
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Info("Password reset requested for unknown email",
				zap.String("event", "password_reset_requested_unknown_email"),
			)
			metrics.RecordAuthEvent("password_reset_requested")
			return generic, nil
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	resetReq, err := s.ledger.CreateRequest(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create reset request: %w", err)
	}

	logger.Info("Password reset request created",
		zap.String("user_id", user.ID.String()),
		zap.String("request_id", resetReq.ID.String()),
		zap.Time("expires_at", resetReq.ExpiresAt),
		zap.String("event", "password_reset_requested"),
	)
	metrics.RecordAuthEvent("password_reset_requested")

	msg := mail.ResetEmail{
		To:        user.Email,
		Link:      s.resetLink(resetReq.Token),
		Code:      resetReq.Code,
		ExpiresIn: s.ledger.TTL(),
	}
	// the request stays valid even if the email never leaves
	if err := s.mailer.SendResetEmail(ctx, msg); err != nil {
		logger.Error("Failed to send reset email",
			zap.String("user_id", user.ID.String()),
			zap.String("request_id", resetReq.ID.String()),
			zap.String("event", "reset_email_failed"),
			zap.Error(err),
		)
		metrics.RecordAuthEvent("reset_email_failed")
	}

	return generic, nil
}

func (s *Service) VerifyResetCode(ctx context.Context, req *VerifyResetCodeRequest) (*MessageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	resetReq, err := s.ledger.LookupByToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Validate(resetReq, req.Code); err != nil {
		logger.Warn("Reset code rejected",
			zap.String("request_id", resetReq.ID.String()),
			zap.String("event", "reset_code_rejected"),
			zap.Error(err),
		)
		metrics.RecordAuthEvent("reset_code_rejected")
		return nil, err
	}

	return &MessageResponse{Message: CodeVerifiedMessage}, nil
}

// ResetPassword validates again instead of trusting an earlier
// VerifyResetCode, then consumes the request together with the new hash.
func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) (*MessageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeWeakPassword, err.Error(), nil)
	}

	resetReq, err := s.ledger.LookupByToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Validate(resetReq, req.Code); err != nil {
		logger.Warn("Password reset rejected",
			zap.String("request_id", resetReq.ID.String()),
			zap.String("event", "password_reset_rejected"),
			zap.Error(err),
		)
		metrics.RecordAuthEvent("password_reset_rejected")
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Consume(ctx, resetReq, hashedPassword); err != nil {
		logger.Warn("Password reset not applied",
			zap.String("request_id", resetReq.ID.String()),
			zap.String("event", "password_reset_failed"),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Info("Password reset successfully",
		zap.String("user_id", resetReq.UserID.String()),
		zap.String("request_id", resetReq.ID.String()),
		zap.String("event", "password_reset_success"),
	)
	metrics.RecordAuthEvent("password_reset_success")

	return &MessageResponse{Message: PasswordResetMessage}, nil
}

func (s *Service) resetLink(token uuid.UUID) string {
	return s.frontendURL + "/reset-password?token=" + url.QueryEscape(token.String())
}
