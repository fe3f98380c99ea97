package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/repository"
	"github.com/Deji-py/eco-rider/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const otpTTL = 10 * time.Minute

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidOTP         = errors.New("invalid or expired code")
)

// Session states. Derived on every query, never stored: the profile row is
// the source of truth for completeness.
type SessionState string

const (
	SessionIncompleteProfile SessionState = "authenticated_incomplete_profile"
	SessionCompleteProfile   SessionState = "authenticated_complete_profile"
)

type Session struct {
	State SessionState  `json:"state"`
	User  *entity.User  `json:"user"`
	Rider *entity.Rider `json:"rider,omitempty"`
}

// Mailer delivers one-time codes. The dev implementation just logs that a
// code was issued; a real deployment plugs an email provider in here.
type Mailer interface {
	SendOTP(email, code string) error
}

// LogMailer is the development mailer. It intentionally does not log the
// code itself.
type LogMailer struct{}

func (LogMailer) SendOTP(email, _ string) error {
	zap.L().Info("otp issued", zap.String("email", email))
	return nil
}

type AuthService struct {
	userRepo  *repository.UserRepository
	riderRepo *repository.RiderRepository
	mailer    Mailer
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(
	userRepo *repository.UserRepository,
	riderRepo *repository.RiderRepository,
	mailer Mailer,
	secret string, ttl time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		riderRepo: riderRepo,
		mailer:    mailer,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// Register creates an unverified user and issues an email OTP.
func (s *AuthService) Register(email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	user := &entity.User{Email: email, Password: string(hashed)}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.issueOTP(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueOTP(user *entity.User) error {
	code, err := utils.GenerateCode(6)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetOTP(user.ID, code, time.Now().Add(otpTTL)); err != nil {
		return err
	}
	return s.mailer.SendOTP(user.Email, code)
}

// ResendOTP reissues the email verification code.
func (s *AuthService) ResendOTP(email string) error {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return ErrInvalidCredentials
	}
	return s.issueOTP(user)
}

// VerifyOTP confirms the emailed code and, on success, issues a session
// token so signup flows straight into the app.
func (s *AuthService) VerifyOTP(email, code string) (string, *entity.User, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, ErrInvalidOTP
	}
	if user.OTPCode == "" || user.OTPCode != code ||
		user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return "", nil, ErrInvalidOTP
	}
	if err := s.userRepo.ClearOTP(user.ID, true); err != nil {
		return "", nil, err
	}
	user.EmailVerified = true

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, user, nil
}

// Login checks credentials and issues a JWT.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return "", nil, ErrEmailNotVerified
	}

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, user, nil
}

// RequestPasswordReset emails a reset code. Always succeeds from the
// caller's point of view so the endpoint does not leak which emails exist.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.issueOTP(user)
}

// ResetPassword trades a valid reset code for a new password.
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return ErrInvalidOTP
	}
	if user.OTPCode == "" || user.OTPCode != code ||
		user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return ErrInvalidOTP
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("hash password failed")
	}
	if err := s.userRepo.SetPassword(user.ID, string(hashed)); err != nil {
		return err
	}
	return s.userRepo.ClearOTP(user.ID, false)
}

// CurrentSession derives the session state by re-querying for a rider
// profile. A missing profile row is a normal negative result, not an error.
func (s *AuthService) CurrentSession(userID uint) (*Session, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	rider, err := s.riderRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Session{State: SessionIncompleteProfile, User: user}, nil
		}
		return nil, err
	}
	return &Session{State: SessionCompleteProfile, User: user, Rider: rider}, nil
}
