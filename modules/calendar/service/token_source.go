package service

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sparkle-booking/core/cache"
	"sparkle-booking/core/constants"
	"sparkle-booking/core/errors"
	"sparkle-booking/core/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	jwtBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionLifetime  = time.Hour
)

// AssertionTokenSource exchanges a signed service-account assertion for a bearer token.
// With a non-nil cache the token is reused until shortly before it expires; without one
// every call re-authenticates.
type AssertionTokenSource struct {
	issuer     string
	scope      string
	audience   string
	key        *rsa.PrivateKey
	httpClient *http.Client
	cache      cache.Cache
	timeout    time.Duration
	now        func() time.Time
}

func NewAssertionTokenSource(cfg GatewayConfig, httpClient *http.Client, c cache.Cache) (*AssertionTokenSource, error) {
	if cfg.ServiceIssuer == "" {
		return nil, fmt.Errorf("calendar: service issuer is required")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("calendar: parse signing key: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.requestTimeout()}
	}
	return &AssertionTokenSource{
		issuer:     cfg.ServiceIssuer,
		scope:      cfg.Scope,
		audience:   cfg.TokenAudience,
		key:        key,
		httpClient: httpClient,
		cache:      c,
		timeout:    cfg.requestTimeout(),
		now:        time.Now,
	}, nil
}

// Token satisfies oauth2.TokenSource.
func (s *AssertionTokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.TokenContext(ctx)
}

func (s *AssertionTokenSource) TokenContext(ctx context.Context) (*oauth2.Token, error) {
	if tok := s.cached(ctx); tok != nil {
		return tok, nil
	}

	assertion, err := s.SignAssertion()
	if err != nil {
		logger.Error("CalendarToken:SignAssertion:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrUpstreamAuth, "failed to sign calendar assertion", err)
	}

	tok, err := s.exchange(ctx, assertion)
	if err != nil {
		logger.Error("CalendarToken:Exchange:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrUpstreamAuth, "failed to obtain calendar access token", err)
	}

	s.store(ctx, tok)
	return tok, nil
}

// SignAssertion builds the RS256 JWT assertion for the token endpoint.
func (s *AssertionTokenSource) SignAssertion() (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"iss":   s.issuer,
		"scope": s.scope,
		"aud":   s.audience,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.key)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *AssertionTokenSource) exchange(ctx context.Context, assertion string) (*oauth2.Token, error) {
	form := url.Values{}
	form.Set("grant_type", jwtBearerGrantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.audience, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("access token missing in response")
	}
	if tr.TokenType == "" {
		tr.TokenType = "Bearer"
	}
	if tr.ExpiresIn <= 0 {
		tr.ExpiresIn = int64(assertionLifetime / time.Second)
	}

	return &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
		Expiry:      s.now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}

func (s *AssertionTokenSource) cacheKey() string {
	return constants.RedisKeyCalendarToken + s.issuer
}

func (s *AssertionTokenSource) cached(ctx context.Context) *oauth2.Token {
	if s.cache == nil {
		return nil
	}
	val, ok, err := s.cache.Get(ctx, s.cacheKey())
	if err != nil {
		logger.Warn("CalendarToken:CacheGet:Error", "error", err)
		return nil
	}
	if !ok || val == "" {
		return nil
	}
	return &oauth2.Token{AccessToken: val, TokenType: "Bearer"}
}

func (s *AssertionTokenSource) store(ctx context.Context, tok *oauth2.Token) {
	if s.cache == nil {
		return
	}
	ttl := tok.Expiry.Sub(s.now()) - constants.CalendarTokenEarlyExpiry
	if ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(), tok.AccessToken, ttl); err != nil {
		logger.Warn("CalendarToken:CacheSet:Error", "error", err)
	}
}
