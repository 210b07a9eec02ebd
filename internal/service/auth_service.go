package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

const (
	tokenIssuer     = "tutor-dashboard"
	audienceLogin   = "login"
	audienceSession = "session"
)

type AuthConfig struct {
	Secret     string
	LoginTTL   time.Duration
	SessionTTL time.Duration
}

// Session выданный сессионный токен
type Session struct {
	Token     string
	Claims    *model.SessionClaims
	ExpiresAt time.Time
}

// AuthService выдаёт одноразовые токены входа для бота и обменивает их на сессии
type AuthService struct {
	config    AuthConfig
	tokens    TokenStore
	validator *validator.Validate
	now       func() time.Time
	logger    *zap.Logger
}

func NewAuthService(config AuthConfig, tokens TokenStore, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		config:    config,
		tokens:    tokens,
		validator: validator.New(),
		now:       time.Now,
		logger:    logger,
	}
}

// IssueLoginToken выдаёт короткоживущий токен для ссылки входа
func (s *AuthService) IssueLoginToken(id string, role model.Role, telegramID int64) (string, error) {
	claims := &model.SessionClaims{ID: id, Role: role, TelegramID: telegramID}
	if err := s.validator.Struct(claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	token, _, err := s.sign(claims, audienceLogin, s.config.LoginTTL)
	if err != nil {
		return "", fmt.Errorf("sign login token: %w", err)
	}
	return token, nil
}

// ExchangeLoginToken проверяет токен входа и выдаёт сессию.
// Каждый токен входа можно обменять только один раз.
func (s *AuthService) ExchangeLoginToken(ctx context.Context, token string) (*Session, error) {
	claims, err := s.parse(token, audienceLogin)
	if err != nil {
		return nil, err
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	fresh, err := s.tokens.Consume(ctx, claims.RegisteredClaims.ID, ttl)
	if err != nil {
		return nil, fmt.Errorf("consume login token: %w", err)
	}
	if !fresh {
		s.logger.Warn("Login token replayed",
			zap.Int64("telegram_id", claims.TelegramID),
			zap.String("jti", claims.RegisteredClaims.ID))
		return nil, ErrTokenAlreadyUsed
	}

	session := &model.SessionClaims{ID: claims.ID, Role: claims.Role, TelegramID: claims.TelegramID}
	signed, expiresAt, err := s.sign(session, audienceSession, s.config.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.Info("Session issued",
		zap.Int64("telegram_id", session.TelegramID),
		zap.String("role", string(session.Role)))

	return &Session{Token: signed, Claims: session, ExpiresAt: expiresAt}, nil
}

// ParseSession проверяет сессионный токен из cookie
func (s *AuthService) ParseSession(token string) (*model.SessionClaims, error) {
	return s.parse(token, audienceSession)
}

func (s *AuthService) sign(claims *model.SessionClaims, audience string, ttl time.Duration) (string, time.Time, error) {
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    tokenIssuer,
		Subject:   claims.ID,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *AuthService) parse(tokenString, audience string) (*model.SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &model.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if err := s.validator.Struct(claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.RegisteredClaims.ID == "" {
		return nil, fmt.Errorf("%w: missing token id", ErrInvalidToken)
	}

	return claims, nil
}
