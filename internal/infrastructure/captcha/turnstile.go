package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/config"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

const (
	requestTimeout = 10 * time.Second
	// Maximum response body size for the verify endpoint (64KB)
	maxVerifyResponseSize = 64 << 10
)

// verifyResponse is the siteverify response shared by Turnstile and reCAPTCHA.
type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// TurnstileVerifier verifies captcha tokens against the provider's
// siteverify endpoint. It implements the access usecases' CaptchaVerifier
// port.
type TurnstileVerifier struct {
	cfg        *config.CaptchaConfig
	httpClient *http.Client
	logger     logger.Interface
}

// NewTurnstileVerifier creates a new TurnstileVerifier. Returns nil when no
// secret is configured so callers can wire verification as optional.
func NewTurnstileVerifier(cfg *config.CaptchaConfig, log logger.Interface) *TurnstileVerifier {
	if !cfg.IsConfigured() {
		return nil
	}
	return &TurnstileVerifier{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: log.With("component", "captcha.turnstile"),
	}
}

// Verify checks the token with the provider.
func (v *TurnstileVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	form := url.Values{}
	form.Set("secret", v.cfg.Secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.cfg.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build captcha verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("captcha verify request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVerifyResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read captcha verify response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("captcha verify endpoint returned status %d", resp.StatusCode)
	}

	var result verifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode captcha verify response: %w", err)
	}

	if !result.Success {
		v.logger.Debugw("captcha verification rejected", "error_codes", result.ErrorCodes)
		return fmt.Errorf("captcha verification rejected: %s", strings.Join(result.ErrorCodes, ","))
	}

	return nil
}
