package gatekeeper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/clubkit/roster-service/internal/domain/user"
	"github.com/clubkit/roster-service/internal/platform/logging"
	"github.com/clubkit/roster-service/internal/platform/resilience"
	"github.com/clubkit/roster-service/internal/usecase"
)

var errGatekeeperTransient = crerr.New("gatekeeper transient failure")

type Config struct {
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client introspects bearer tokens against the external account service.
// Concurrent introspections of the same token are collapsed through
// singleflight; repeated transient failures trip the circuit breaker.
type Client struct {
	httpClient     *http.Client
	introspectURL  string
	adminKey       string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(httpClient *http.Client, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		introspectURL:  buildURL(cfg.BaseURL, cfg.IntrospectPath),
		adminKey:       strings.TrimSpace(cfg.AdminKey),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	value, err, _ := c.flight.Do(hashToken(token), func() (any, error) {
		return c.introspect(ctx, token)
	})
	if err != nil {
		return user.Principal{}, err
	}

	principal, ok := value.(user.Principal)
	if !ok {
		return user.Principal{}, fmt.Errorf("unexpected introspection result type %T", value)
	}
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "gatekeeper circuit breaker rejected request", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: gatekeeper circuit open", usecase.ErrDependencyUnavailable)
		}
	}

	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	c.logger.DebugContext(ctx, "gatekeeper introspection request",
		"curl_preview", buildCurlPreview(c.introspectURL, c.adminKey != ""),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, strings.NewReader(string(encoded)))
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: request introspection: %v", errGatekeeperTransient, err)
		c.recordCircuitResult(callErr)
		return user.Principal{}, fmt.Errorf("%w: account service unreachable", usecase.ErrDependencyUnavailable)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.recordCircuitResult(nil)
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		callErr := fmt.Errorf("%w: read introspect response: %v", errGatekeeperTransient, err)
		c.recordCircuitResult(callErr)
		return user.Principal{}, fmt.Errorf("%w: account service response unreadable", usecase.ErrDependencyUnavailable)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "gatekeeper introspection non-200", "status_code", resp.StatusCode)
		callErr := fmt.Errorf("%w: introspection status %d", errGatekeeperTransient, resp.StatusCode)
		if isRetryableStatus(resp.StatusCode) {
			c.recordCircuitResult(callErr)
			return user.Principal{}, fmt.Errorf("%w: account service unavailable", usecase.ErrDependencyUnavailable)
		}
		c.recordCircuitResult(nil)
		return user.Principal{}, fmt.Errorf("gatekeeper introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		c.recordCircuitResult(nil)
		return user.Principal{}, crerr.Wrap(err, "unmarshal introspect response")
	}

	if !decoded.Active {
		c.recordCircuitResult(nil)
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		c.recordCircuitResult(nil)
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	c.recordCircuitResult(nil)
	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
		Role:   normalizeRole(decoded.Role),
	}, nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	if isCircuitFailure(err) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func normalizeRole(raw string) user.Role {
	switch user.Role(strings.ToLower(strings.TrimSpace(raw))) {
	case user.RoleAdmin:
		return user.RoleAdmin
	case user.RoleCoach:
		return user.RoleCoach
	default:
		return user.RoleViewer
	}
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
