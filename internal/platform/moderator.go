package platform

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"go-defender/internal/logging"
)

const requestTimeout = 2 * time.Second

// RESTModerator executes the platform-level remediation primitives over the
// Discord REST API. Every call is fallible and never retried.
type RESTModerator struct {
	pool        *HTTPPool
	rateLimiter *RateLimitMonitor
	token       string
	baseURL     string
}

func NewRESTModerator(pool *HTTPPool, rateLimiter *RateLimitMonitor, token, baseURL string) *RESTModerator {
	if baseURL == "" {
		baseURL = "https://discord.com/api/v10"
	}
	return &RESTModerator{
		pool:        pool,
		rateLimiter: rateLimiter,
		token:       token,
		baseURL:     baseURL,
	}
}

// Ban permanently removes the user, purging wipeDays days of their message
// history.
func (m *RESTModerator) Ban(guildID, userID uint64, reason string, wipeDays int) error {
	url := fmt.Sprintf("%s/guilds/%d/bans/%d", m.baseURL, guildID, userID)

	payload := map[string]interface{}{
		"delete_message_seconds": wipeDays * 86400,
	}
	body, _ := json.Marshal(payload)

	return m.do("ban", guildID, url, fasthttp.MethodPut, reason, body)
}

func (m *RESTModerator) Unban(guildID, userID uint64, reason string) error {
	url := fmt.Sprintf("%s/guilds/%d/bans/%d", m.baseURL, guildID, userID)
	return m.do("unban", guildID, url, fasthttp.MethodDelete, reason, nil)
}

func (m *RESTModerator) Kick(guildID, userID uint64, reason string) error {
	url := fmt.Sprintf("%s/guilds/%d/members/%d", m.baseURL, guildID, userID)
	return m.do("kick", guildID, url, fasthttp.MethodDelete, reason, nil)
}

func (m *RESTModerator) DeleteMessage(guildID, channelID, messageID uint64) error {
	url := fmt.Sprintf("%s/channels/%d/messages/%d", m.baseURL, channelID, messageID)
	return m.do("message_delete", guildID, url, fasthttp.MethodDelete, "", nil)
}

func (m *RESTModerator) do(route string, guildID uint64, url, method, reason string, body []byte) error {
	if !m.rateLimiter.CanExecute(route, guildID) {
		return ErrRateLimited
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set("Authorization", "Bot "+m.token)
	if reason != "" {
		req.Header.Set("X-Audit-Log-Reason", reason)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.SetBody(body)
	}

	start := time.Now()
	if err := m.pool.Client().DoTimeout(req, resp, requestTimeout); err != nil {
		return fmt.Errorf("%s request: %w", route, err)
	}

	m.rateLimiter.UpdateFromResponse(resp, route, guildID)

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		logging.Debug("[platform] %s guild=%d status=%d took=%dµs",
			route, guildID, status, time.Since(start).Microseconds())
		return nil
	}

	return &APIError{Route: route, Status: status}
}
