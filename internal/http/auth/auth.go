package auth

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims are the JWT claims accepted by the API. A token with AccountIDs may
// only read those accounts; without them it may read any account.
type Claims struct {
	jwt.RegisteredClaims
	AccountIDs []string `json:"account_ids,omitempty"`
}

// Allows reports whether the claims grant access to accountID.
func (c *Claims) Allows(accountID uuid.UUID) bool {
	if c == nil || len(c.AccountIDs) == 0 {
		return true
	}

	return slices.Contains(c.AccountIDs, accountID.String())
}

// Authenticator issues and validates HS256 tokens. With an empty secret it
// is disabled and lets every request through.
type Authenticator struct {
	secret []byte
	logger *zap.Logger
}

func New(secret string, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Authenticator{secret: []byte(secret), logger: logger.Named("auth")}
}

func (a *Authenticator) Enabled() bool {
	return len(a.secret) > 0
}

// Issue signs a token for subject valid for ttl from now.
func (a *Authenticator) Issue(subject string, accountIDs []uuid.UUID, now time.Time, ttl time.Duration) (string, error) {
	ids := make([]string, len(accountIDs))
	for i, id := range accountIDs {
		ids[i] = id.String()
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AccountIDs: ids,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// claims in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	if !a.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		tokenString, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || tokenString == "" {
			a.reject(w, r, ErrMissingToken)
			return
		}

		claims, err := a.Parse(tokenString)
		if err != nil {
			a.reject(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func (a *Authenticator) reject(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Warn("authentication failed", zap.Error(err), zap.String("path", r.URL.Path))

	w.Header().Set("WWW-Authenticate", `Bearer realm="arledger"`)
	http.Error(w, err.Error(), http.StatusUnauthorized)
}

type claimsKey struct{}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromContext returns the authenticated claims, or nil when auth is
// disabled.
func ClaimsFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey{}).(*Claims)
	return c
}
