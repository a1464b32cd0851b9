package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edofi/fiwe/internal/shared/biztime"
	"github.com/edofi/fiwe/internal/shared/config"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the caller identity. Subject holds the user id as a string.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AccessToken struct {
	Token     string
	ExpiresIn int64
	ExpiresAt time.Time
}

type JWTService struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	ttl := cfg.AccessTTL()
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	return &JWTService{
		secret:    []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		accessTTL: ttl,
	}
}

func (s *JWTService) Generate(userID uint, role string) (*AccessToken, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	if role == "" {
		return nil, fmt.Errorf("role is required")
	}

	now := biztime.NowUTC()
	exp := now.Add(s.accessTTL)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &AccessToken{
		Token:     signed,
		ExpiresIn: int64(s.accessTTL.Seconds()),
		ExpiresAt: exp,
	}, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// AccessTTL returns the lifetime of issued tokens.
func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}
