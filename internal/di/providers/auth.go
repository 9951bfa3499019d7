package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookhaven/bookhaven-server/internal/auth"
	"github.com/bookhaven/bookhaven-server/internal/config"
	"github.com/bookhaven/bookhaven-server/internal/logger"
	"github.com/bookhaven/bookhaven-server/internal/ratelimit"
)

// AuthKey wraps the hex-encoded token key.
type AuthKey string

// ProvideAuthKey loads or generates the token signing key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Store.DataPath)
	if err != nil {
		return "", err
	}
	cfg.Auth.AccessTokenKey = key

	log.Info("authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(key), cfg.Auth.AccessTokenDuration)
}

// AuthLimiterHandle wraps the login rate limiter with shutdown capability.
type AuthLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *AuthLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideAuthLimiter provides the per-IP limiter for auth endpoints.
func ProvideAuthLimiter(i do.Injector) (*AuthLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	rps := float64(cfg.Auth.LoginRatePerMinute) / 60.0
	return &AuthLimiterHandle{
		KeyedRateLimiter: ratelimit.New(rps, cfg.Auth.LoginBurst),
	}, nil
}
