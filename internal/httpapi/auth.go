package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/editions/pkg/types"
)

// ErrInvalidToken is returned for tokens that fail validation for any
// reason, including expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the JWT claims carried by caller tokens. The subject is the
// caller's ledger address.
type Claims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}

// TokenService signs and validates caller tokens (HS256).
type TokenService struct {
	signingKey []byte
	issuer     string
}

// NewTokenService creates a token service with the given signing key.
func NewTokenService(signingKey, issuer string) *TokenService {
	return &TokenService{signingKey: []byte(signingKey), issuer: issuer}
}

// Issue signs a token identifying the caller address, valid for ttl.
func (s *TokenService) Issue(caller types.Address, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Address: string(caller),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(caller),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// Validate parses and verifies a caller token, returning the caller
// address.
func (s *TokenService) Validate(tokenString string) (types.Address, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Address == "" {
		return "", ErrInvalidToken
	}
	return types.Address(claims.Address), nil
}

type contextKeyCaller struct{}

// CallerFrom retrieves the authenticated caller address from the context.
func CallerFrom(ctx context.Context) types.Address {
	caller, _ := ctx.Value(contextKeyCaller{}).(types.Address)
	return caller
}

// requireCaller authenticates the request with a bearer token and stores
// the caller address in the request context.
func requireCaller(tokens *TokenService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.Warn("missing bearer token", zap.String("path", r.URL.Path))
				writeError(w, http.StatusUnauthorized, ErrInvalidToken)
				return
			}
			caller, err := tokens.Validate(raw)
			if err != nil {
				logger.Warn("rejected caller token", zap.String("path", r.URL.Path), zap.Error(err))
				writeError(w, http.StatusUnauthorized, err)
				return
			}
			ctx := context.WithValue(r.Context(), contextKeyCaller{}, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
