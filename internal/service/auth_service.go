package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"luwakpos/internal/entity"
	"luwakpos/internal/repository"
	"luwakpos/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// Burned in login so lookups for unknown users cost a bcrypt compare too.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type VerificationKind string

const (
	VerificationRegister VerificationKind = "register"
	VerificationReset    VerificationKind = "reset-password"
)

type LoginInput struct {
	Username  string
	Password  string
	IP        string
	UserAgent string
}

type RegisterInput struct {
	Email    string
	Password string
	Passcode string
}

type ResetPasswordInput struct {
	Email    string
	Passcode string
	Password string
}

// AuthTokens is what a successful login or rotation hands back. The refresh
// token is plaintext here and exactly here; only its digest is stored.
type AuthTokens struct {
	AccessToken      string
	AccessExpiresIn  int64
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type UserProfile struct {
	Sub        string           `json:"sub"`
	Email      string           `json:"email"`
	Role       string           `json:"role"`
	IsAdmin    bool             `json:"isAdmin"`
	RoleType   entity.RoleType  `json:"role_type"`
	EmployeeID *int64           `json:"employee_id,omitempty"`
	Nombre     *string          `json:"nombre,omitempty"`
	Apellido   *string          `json:"apellido,omitempty"`
	AvatarURL  *string          `json:"avatar_url,omitempty"`
}

type AuthService struct {
	users        repository.UserRepository
	sessions     repository.SessionRepository
	refreshRepo  repository.RefreshTokenRepository
	passcodes    repository.PasscodeRepository
	employees    repository.EmployeeRepository
	securityLogs repository.SecurityLogRepository

	emailSender EmailSender
	secrets     PasswordHasher
	digester    TokenDigester
	tokens      AccessTokenIssuer
	clock       Clock
	logger      logrus.FieldLogger

	config AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	refreshRepo repository.RefreshTokenRepository,
	passcodes repository.PasscodeRepository,
	employees repository.EmployeeRepository,
	securityLogs repository.SecurityLogRepository,
	emailSender EmailSender,
	secrets PasswordHasher,
	digester TokenDigester,
	tokens AccessTokenIssuer,
	clock Clock,
	logger logrus.FieldLogger,
	config AuthConfig,
) *AuthService {
	return &AuthService{
		users:        users,
		sessions:     sessions,
		refreshRepo:  refreshRepo,
		passcodes:    passcodes,
		employees:    employees,
		securityLogs: securityLogs,
		emailSender:  emailSender,
		secrets:      secrets,
		digester:     digester,
		tokens:       tokens,
		clock:        clock,
		logger:       logger,
		config:       config,
	}
}

// Login exchanges credentials for a session plus token pair. The session row
// captures IP and user agent for audit.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthTokens, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.findByLogin(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.secrets.Verify(input.Password, dummyPasswordHash)
		_ = s.logSecurity(ctx, nil, &input.IP, entity.LoginFailed, map[string]any{"login": input.Username})
		return nil, ErrInvalidCredentials
	}

	if !s.secrets.Verify(input.Password, user.PasswordHash) {
		_ = s.logSecurity(ctx, &user.ID, &input.IP, entity.LoginFailed, nil)
		return nil, ErrInvalidCredentials
	}

	session := &entity.Session{
		UserID:    user.ID,
		IP:        input.IP,
		UserAgent: input.UserAgent,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	result, err := s.issueTokenPair(ctx, user, session.ID)
	if err != nil {
		return nil, err
	}

	_ = s.logSecurity(ctx, &user.ID, &input.IP, entity.LoginSuccess, nil)
	return result, nil
}

// Refresh rotates a presented refresh token: the matched row is revoked and
// exactly one replacement is created on the same session. A row that was
// already rotated is treated as theft evidence; the entire session chain is
// revoked before the caller is told the token is expired.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	if refreshToken == "" {
		return nil, ErrRefreshMissing
	}

	record, err := s.refreshRepo.FindByDigest(ctx, s.digester.Digest(refreshToken))
	if err != nil {
		return nil, err
	}
	if record == nil || !s.digester.Equal(refreshToken, record.TokenDigest) {
		return nil, ErrRefreshExpired
	}

	if record.Revoked {
		if err := s.refreshRepo.RevokeAllBySession(ctx, record.SessionID); err != nil {
			s.logger.WithError(err).Error("revoking session chain after replay")
		}
		_ = s.logSecurity(ctx, &record.UserID, nil, entity.RefreshReplay, map[string]any{
			"session_id": record.SessionID.String(),
		})
		return nil, ErrRefreshExpired
	}

	if record.ExpiresAt.Before(s.clock.Now()) {
		return nil, ErrRefreshExpired
	}

	user, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrRefreshExpired
	}

	if err := s.refreshRepo.Revoke(ctx, record.ID); err != nil {
		return nil, err
	}

	result, err := s.issueTokenPair(ctx, user, record.SessionID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.TouchRefresh(ctx, record.SessionID, s.clock.Now()); err != nil {
		s.logger.WithError(err).Warn("touching session after rotation")
	}

	return result, nil
}

// Logout is fail-open: whatever goes wrong is logged and swallowed so the
// client can always clear its local state.
func (s *AuthService) Logout(ctx context.Context, refreshToken string, userID *int64, ip *string) {
	if refreshToken != "" {
		digest := s.digester.Digest(refreshToken)

		record, err := s.refreshRepo.FindByDigest(ctx, digest)
		if err != nil {
			s.logger.WithError(err).Warn("logout: refresh token lookup")
		}

		if _, err := s.refreshRepo.RevokeByDigest(ctx, digest); err != nil {
			s.logger.WithError(err).Warn("logout: revoking refresh tokens")
		}

		if record != nil {
			if err := s.sessions.Touch(ctx, record.SessionID, s.clock.Now()); err != nil {
				s.logger.WithError(err).Warn("logout: touching session")
			}
		}
	}

	_ = s.logSecurity(ctx, userID, ip, entity.Logout, nil)
}

// Register creates a user after consuming the most recent passcode issued
// for the email.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailAlreadyRegistered
	}

	passcode, err := s.matchPasscode(ctx, email, input.Passcode)
	if err != nil {
		return err
	}

	hash, err := s.secrets.Hash(input.Password)
	if err != nil {
		return err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		Role:         s.config.StandardRole,
		RoleType:     entity.RoleTypeMesero,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	if err := s.passcodes.Revoke(ctx, passcode.ID); err != nil {
		s.logger.WithError(err).Warn("revoking consumed passcode")
	}
	return nil
}

// ResetPassword consumes a passcode and replaces the user's password.
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	passcode, err := s.matchPasscode(ctx, email, input.Passcode)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := s.secrets.Hash(input.Password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	if err := s.passcodes.Revoke(ctx, passcode.ID); err != nil {
		s.logger.WithError(err).Warn("revoking consumed passcode")
	}

	_ = s.logSecurity(ctx, &user.ID, nil, entity.PasswordReset, nil)
	return nil
}

// SendVerification issues a fresh passcode for the email and mails it.
// Issuing supersedes every earlier code for the same target.
func (s *AuthService) SendVerification(ctx context.Context, email string, kind VerificationKind) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidInput
	}
	email = utils.NormalizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	switch kind {
	case VerificationRegister:
		if existing != nil {
			return ErrEmailAlreadyRegistered
		}
	case VerificationReset:
		if existing == nil {
			return ErrUserNotFound
		}
	default:
		return ErrInvalidInput
	}

	code, err := utils.GeneratePasscode()
	if err != nil {
		return err
	}
	hash, err := s.secrets.Hash(code)
	if err != nil {
		return err
	}

	passcode := &entity.Passcode{
		PassObject: email,
		CodeHash:   hash,
		ValidUntil: s.clock.Now().Add(s.config.PasscodeTTL),
	}
	if err := s.passcodes.Create(ctx, passcode); err != nil {
		return err
	}

	if err := s.emailSender.SendPasscodeEmail(ctx, email, code); err != nil {
		s.logger.WithError(err).Error("sending passcode email")
		return ErrEmailDelivery
	}

	_ = s.logSecurity(ctx, nil, nil, entity.PasscodeIssued, map[string]any{"target": email})
	return nil
}

// CurrentUser resolves the identity behind an access token together with
// the employee profile, when one exists.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile := &UserProfile{
		Sub:      formatUserID(user.ID),
		Email:    user.Email,
		Role:     user.Role,
		IsAdmin:  user.Role == s.config.AdminRole,
		RoleType: user.RoleType,
	}

	employee, err := s.employees.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if employee != nil {
		profile.EmployeeID = &employee.ID
		profile.Nombre = &employee.Nombre
		profile.Apellido = &employee.Apellido
		profile.AvatarURL = employee.AvatarURL
		if employee.RoleType != "" {
			profile.RoleType = employee.RoleType
		}
	}
	return profile, nil
}

func (s *AuthService) findByLogin(ctx context.Context, login string) (*entity.User, error) {
	user, err := s.users.FindByUsername(ctx, login)
	if err != nil || user != nil {
		return user, err
	}
	return s.users.FindByEmail(ctx, utils.NormalizeEmail(login))
}

// matchPasscode validates a submitted code against the most recent row for
// the target. Older codes fail here even when unexpired: recency supersedes.
func (s *AuthService) matchPasscode(ctx context.Context, target string, code string) (*entity.Passcode, error) {
	record, err := s.passcodes.FindLatest(ctx, target)
	if err != nil {
		return nil, err
	}
	if record == nil || record.Revoked || !record.ValidUntil.After(s.clock.Now()) {
		return nil, ErrInvalidPasscode
	}
	if !s.secrets.Verify(code, record.CodeHash) {
		return nil, ErrInvalidPasscode
	}
	return record, nil
}

// issueTokenPair mints an access token and persists the digest of a fresh
// refresh token bound to the session.
func (s *AuthService) issueTokenPair(ctx context.Context, user *entity.User, sessionID uuid.UUID) (*AuthTokens, error) {
	refreshPlain, err := utils.GenerateRandomToken(32)
	if err != nil {
		return nil, err
	}
	expiresAt := s.clock.Now().Add(s.config.RefreshTokenTTL)

	record := &entity.RefreshToken{
		UserID:      user.ID,
		SessionID:   sessionID,
		TokenDigest: s.digester.Digest(refreshPlain),
		ExpiresAt:   expiresAt,
	}
	if err := s.refreshRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	accessToken, ttl, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthTokens{
		AccessToken:      accessToken,
		AccessExpiresIn:  int64(ttl.Seconds()),
		RefreshToken:     refreshPlain,
		RefreshExpiresAt: expiresAt,
	}, nil
}

func (s *AuthService) logSecurity(
	ctx context.Context,
	userID *int64,
	ip *string,
	action entity.SecurityAction,
	metadata map[string]any,
) error {
	if s.securityLogs == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}
	return s.securityLogs.Log(ctx, &entity.SecurityLog{
		UserID:   userID,
		IP:       ip,
		Action:   action,
		Metadata: payload,
	})
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}
