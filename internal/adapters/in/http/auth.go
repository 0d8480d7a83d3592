package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

const (
	DefaultAccountCacheSize = 1024
	DefaultAccountCacheTTL  = time.Minute
)

var ErrInvalidToken = errors.New("invalid token")

// AccountReader resolves the account a token was issued to.
type AccountReader interface {
	Get(ctx context.Context, id kernel.ID) (*account.Account, error)
}

type AuthConfig struct {
	Secret    []byte
	Issuer    string
	CacheSize int
	CacheTTL  time.Duration
}

// Authenticator turns a bearer token into the acting account. Tokens are
// HS256 JWTs whose subject is the account id. Resolved actors are cached for
// a short while, so a role change or deactivation takes effect after at most
// one TTL.
type Authenticator struct {
	secret   []byte
	issuer   string
	accounts AccountReader
	cache    *expirable.LRU[kernel.ID, account.Actor]
}

func NewAuthenticator(cfg AuthConfig, accounts AccountReader) *Authenticator {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultAccountCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultAccountCacheTTL
	}
	return &Authenticator{
		secret:   cfg.Secret,
		issuer:   cfg.Issuer,
		accounts: accounts,
		cache:    expirable.NewLRU[kernel.ID, account.Actor](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// Middleware authenticates every request it wraps and stores the actor in
// the echo context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			actor, err := a.Authenticate(c.Request().Context(), raw)
			if err != nil {
				if errors.Is(err, ErrInvalidToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
				}
				return err
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// Authenticate verifies raw and resolves the actor it names. A token of an
// unknown or inactive account is invalid.
func (a *Authenticator) Authenticate(ctx context.Context, raw string) (account.Actor, error) {
	id, err := a.subject(raw)
	if err != nil {
		return account.Actor{}, err
	}

	if actor, ok := a.cache.Get(id); ok {
		return actor, nil
	}

	acc, err := a.accounts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return account.Actor{}, fmt.Errorf("%w: unknown account %s", ErrInvalidToken, id)
		}
		return account.Actor{}, err
	}
	if !acc.IsActive() {
		return account.Actor{}, fmt.Errorf("%w: account %s is inactive", ErrInvalidToken, id)
	}

	actor := acc.Actor()
	a.cache.Add(id, actor)
	return actor, nil
}

func (a *Authenticator) subject(raw string) (kernel.ID, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	v, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: subject %q is not an account id", ErrInvalidToken, claims.Subject)
	}
	id := kernel.ID(v)
	if err = id.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return id, nil
}

// IssueToken signs a token for the account id, valid for ttl.
func IssueToken(secret []byte, issuer string, id kernel.ID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   id.String(),
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func actorFrom(c echo.Context) (account.Actor, error) {
	actor, ok := c.Get(actorContextKey).(account.Actor)
	if !ok {
		return account.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return actor, nil
}
