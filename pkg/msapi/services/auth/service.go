package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/kv"
	"github.com/quatton/metashare/pkg/msapi/schemas"
	"github.com/quatton/metashare/pkg/msauth"
	"github.com/quatton/metashare/pkg/mserr"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/store"
)

const kvPrefixRefresh = "auth:refresh:"

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthService mints and verifies the HMAC-signed access tokens used by the
// API, and rotates opaque refresh tokens kept (hashed) in the kv store.
type AuthService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	kv         kv.Store
	users      *store.UserStore
	logger     *mslog.Logger
	now        func() time.Time
}

func NewAuthService(cfg Config, users *store.UserStore, kvStore kv.Store, logger *mslog.Logger) *AuthService {
	if logger == nil {
		logger = mslog.NewDefault()
	}
	return &AuthService{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		kv:         kvStore,
		users:      users,
		logger:     logger,
		now:        time.Now,
	}
}

// IssueToken signs an access token for u.
func (s *AuthService) IssueToken(u *models.User) (string, error) {
	now := s.now()
	claims := msauth.ToClaims(&msauth.UserClaims{
		ID:       u.ID.String(),
		Username: u.Username,
		IsStaff:  u.IsStaff,
		Iss:      msauth.Issuer,
		Aud:      msauth.Audience,
		Iat:      now.Unix(),
		Exp:      now.Add(s.accessTTL).Unix(),
	})
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// IssueTokensWithRefresh returns an access token plus a new refresh token.
func (s *AuthService) IssueTokensWithRefresh(ctx context.Context, u *models.User) (schemas.TokenPair, error) {
	access, err := s.IssueToken(u)
	if err != nil {
		return schemas.TokenPair{}, err
	}
	refresh, err := s.createRefreshToken(ctx, u.ID)
	if err != nil {
		return schemas.TokenPair{}, err
	}
	return schemas.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(s.accessTTL.Seconds()),
	}, nil
}

// RefreshTokens rotates refreshToken: the old one stops working and a new
// pair is issued. Of concurrent calls with the same token only one wins.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (schemas.TokenPair, error) {
	userID, err := s.consumeRefreshToken(ctx, refreshToken)
	if err != nil {
		return schemas.TokenPair{}, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if mserr.IsCode(err, mserr.CodeNotFound) {
			return schemas.TokenPair{}, ErrInvalidRefreshToken
		}
		return schemas.TokenPair{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return s.IssueTokensWithRefresh(ctx, u)
}

// Revoke forgets a refresh token. Unknown tokens are ignored.
func (s *AuthService) Revoke(ctx context.Context, refreshToken string) error {
	return s.kv.Delete(ctx, kvPrefixRefresh+hashToken(refreshToken))
}

// ValidateToken verifies signature, expiry, issuer and audience.
func (s *AuthService) ValidateToken(tokenString string) (*msauth.UserClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(msauth.Issuer),
		jwt.WithAudience(msauth.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return msauth.FromMapClaims(claims)
}

func (s *AuthService) createRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	raw := base64.RawURLEncoding.EncodeToString(buf)
	key := kvPrefixRefresh + hashToken(raw)
	if err := s.kv.Set(ctx, key, []byte(userID.String()), s.refreshTTL); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return raw, nil
}

func (s *AuthService) consumeRefreshToken(ctx context.Context, token string) (uuid.UUID, error) {
	data, err := s.kv.GetDel(ctx, kvPrefixRefresh+hashToken(token))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return uuid.Nil, ErrInvalidRefreshToken
		}
		return uuid.Nil, err
	}
	id, err := uuid.ParseBytes(data)
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return id, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
