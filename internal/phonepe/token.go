package phonepe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Gagan41/ecom/internal/logger"
	"go.uber.org/zap"
)

// fetchToken performs the client-credentials grant against the gateway's
// OAuth endpoint. Tokens are short-lived and fetched fresh for every gateway
// call; this trades an extra round trip for not having to track expiry.
// Retrying is left to the caller.
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":      {c.cfg.ClientID},
		"client_secret":  {c.cfg.ClientSecret},
		"client_version": {"1"},
		"grant_type":     {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthHostURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.FromCtx(ctx).Error("phonepe token request failed", zap.Error(err))
		return "", &AuthError{Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AuthError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		logger.FromCtx(ctx).Error("phonepe token endpoint returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return "", &AuthError{Body: string(bodyBytes)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(bodyBytes, &tr); err != nil {
		return "", &AuthError{Body: string(bodyBytes), Err: err}
	}
	if tr.AccessToken == "" {
		return "", &AuthError{Body: string(bodyBytes)}
	}

	return tr.AccessToken, nil
}
