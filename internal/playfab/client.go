package playfab

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"verifybot/internal/models"
)

const (
	loginPath          = "/Client/LoginWithCustomID"
	getAccountInfoPath = "/Client/GetAccountInfo"

	authorizationHeader = "X-Authorization"
	customIDPrefix      = "bot-"
	maxSessionRetries   = 1
	maxResponseBytes    = 1 << 20
)

var ErrSessionUnavailable = errors.New("playfab session not ready")

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type Config struct {
	TitleID    string        `env:"TITLE_ID"`
	BaseURL    string        `env:"BASE_URL" envDefault:""`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"50m"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Client resolves PlayFab ids through the Client API using a custom-id session.
type Client struct {
	http    *http.Client
	baseURL string
	titleID string
	session *Session
	logger  Logger
}

func NewClient(cfg *Config, logger Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.playfabapi.com", cfg.TitleID)
	}

	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: baseURL,
		titleID: cfg.TitleID,
		logger:  logger,
	}
	c.session = newSession(cfg.SessionTTL, cfg.Timeout, c.loginWithCustomID)
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

// Login forces a fresh session.
func (c *Client) Login(ctx context.Context) error {
	_, err := c.session.refresh(ctx)
	return err
}

// LookupPlayer returns the account for externalID, nil when PlayFab reports
// the account does not exist, and an error when existence could not be confirmed.
func (c *Client) LookupPlayer(ctx context.Context, externalID string) (*models.PlayerInfo, error) {
	for attempt := 0; ; attempt++ {
		ticket, err := c.session.Ticket(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
		}

		var data getAccountInfoResult
		err = c.call(ctx, getAccountInfoPath, ticket, getAccountInfoRequest{PlayFabID: externalID}, &data)

		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if apiErr.AccountNotFound() {
				return nil, nil
			}
			if apiErr.SessionRejected() && attempt < maxSessionRetries {
				c.logger.Warn("PlayFab session error, logging in again: %s", apiErr.Error())
				c.session.Invalidate(ticket)
				continue
			}
		}
		if err != nil {
			return nil, err
		}

		info := data.AccountInfo
		id := info.PlayFabID
		if id == "" {
			id = externalID
		}
		return &models.PlayerInfo{
			ExternalID:  id,
			DisplayName: info.TitleInfo.DisplayName,
			Username:    info.Username,
		}, nil
	}
}

func (c *Client) loginWithCustomID(ctx context.Context) (string, error) {
	req := loginWithCustomIDRequest{
		TitleID:       c.titleID,
		CustomID:      customIDPrefix + randomSuffix(8),
		CreateAccount: true,
	}

	var data loginResult
	if err := c.call(ctx, loginPath, "", req, &data); err != nil {
		c.logger.Error("PlayFab login failed: %v", err)
		return "", err
	}
	if data.SessionTicket == "" {
		return "", fmt.Errorf("playfab login returned empty session ticket")
	}

	c.logger.Info("PlayFab logged in")
	return data.SessionTicket, nil
}

func (c *Client) call(ctx context.Context, path, ticket string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ticket != "" {
		req.Header.Set(authorizationHeader, ticket)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("playfab %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read playfab response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode playfab response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || env.Error != "" {
		return &APIError{
			HTTPStatus: resp.StatusCode,
			Code:       env.Error,
			ErrorCode:  env.ErrorCode,
			Message:    env.ErrorMessage,
		}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode playfab data: %w", err)
	}
	return nil
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}
