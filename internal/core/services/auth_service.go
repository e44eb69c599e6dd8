package services

import (
	"context"
	"errors"
	"log"

	"mandoubi/internal/adapters/persistence/repositories"
	"mandoubi/internal/config"
	"mandoubi/internal/core/domain"
	"mandoubi/internal/pkg/jwt"
	"mandoubi/internal/pkg/password"
	"mandoubi/internal/session"
)

// Token errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrSessionClosed = errors.New("session closed")
)

// AuthService handles login, session lifecycle and the status poll
type AuthService struct {
	userRepo  repositories.UserRepository
	notifRepo repositories.NotificationRepository
	sessions  *session.Manager
	cfg       *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	sessions *session.Manager,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		notifRepo: notifRepo,
		sessions:  sessions,
		cfg:       cfg,
	}
}

// LoginInput represents login input. Family picks the agent or the admin pool.
type LoginInput struct {
	Username string             `json:"username" validate:"required"`
	Password string             `json:"password" validate:"required"`
	Family   domain.LoginFamily `json:"family" validate:"required,oneof=AGENT ADMIN"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *domain.User `json:"user"`
	SessionID    string       `json:"session_id"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// StatusResult is the answer to a status poll
type StatusResult struct {
	User        *domain.User `json:"user"`
	UnreadCount int64        `json:"unread_count"`
}

// Login authenticates a user against one login family and opens a session
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by username
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. The user must belong to the requested pool
	if !input.Family.Admits(user.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 4. Suspended accounts cannot log in
	if user.IsSuspended() {
		return nil, domain.ErrAccountSuspended
	}

	// 5. Open session and issue tokens
	sess, err := s.sessions.Open(ctx, user)
	if err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(sess.User, sess.ID)
	if err != nil {
		_ = s.sessions.Close(ctx, sess.ID)
		return nil, err
	}

	log.Printf("✅ User logged in: %s [%s]", user.Username, user.Role)

	return &AuthResponse{
		User:         sess.User,
		SessionID:    sess.ID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Refresh reissues tokens while the session is open and the user active
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	sess, err := s.sessions.Hydrate(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionClosed
		}
		return nil, err
	}

	user, err := s.activeUser(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Refresh(ctx, sess, user); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(sess.User, sess.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Username)

	return &AuthResponse{
		User:         sess.User,
		SessionID:    sess.ID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout closes the session
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Close(ctx, sessionID); err != nil {
		return err
	}
	log.Printf("✅ Session %s closed", sessionID)
	return nil
}

// Authenticate validates an access token and hydrates its session
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*session.Session, error) {
	claims, err := jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	sess, err := s.sessions.Hydrate(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionClosed
		}
		return nil, err
	}
	if sess.User == nil || sess.User.ID != claims.UserID {
		return nil, ErrInvalidToken
	}
	return sess, nil
}

// Me returns the session's user snapshot
func (s *AuthService) Me(ctx context.Context, sessionID string) (*domain.User, error) {
	sess, err := s.sessions.Hydrate(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionClosed
		}
		return nil, err
	}
	return sess.User, nil
}

// CheckStatus is the periodic poll. A suspended user has the session terminated
// and gets ErrAccountSuspended; otherwise the fresh user and unread count come back.
func (s *AuthService) CheckStatus(ctx context.Context, sessionID string) (*StatusResult, error) {
	sess, err := s.sessions.Hydrate(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionClosed
		}
		return nil, err
	}

	user, err := s.activeUser(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Refresh(ctx, sess, user); err != nil {
		log.Printf("⚠️ Session %s refresh failed: %v", sess.ID, err)
	}

	unread, err := s.notifRepo.CountUnread(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &StatusResult{User: sess.User, UnreadCount: unread}, nil
}

// activeUser reloads the session's user and closes the session when it may no longer be used
func (s *AuthService) activeUser(ctx context.Context, sess *session.Session) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, sess.User.ID)
	if errors.Is(err, domain.ErrNotFound) {
		_ = s.sessions.Close(ctx, sess.ID)
		return nil, ErrSessionClosed
	}
	if err != nil {
		return nil, err
	}

	if user.IsSuspended() {
		if err := s.sessions.Close(ctx, sess.ID); err != nil {
			log.Printf("❌ Failed to close session %s of suspended user %s: %v", sess.ID, user.Username, err)
		}
		log.Printf("🔒 Session %s terminated: %s is suspended", sess.ID, user.Username)
		return nil, domain.ErrAccountSuspended
	}
	return user, nil
}

// generateTokens generates access and refresh tokens bound to a session
func (s *AuthService) generateTokens(user *domain.User, sessionID string) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Username,
		string(user.Role),
		sessionID,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		sessionID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
