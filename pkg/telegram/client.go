package telegram

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"krishimitra/pkg/errors"
	"krishimitra/pkg/logger"
)

// Client is a thin wrapper over the Telegram Bot API: long polling,
// rate-limited sends, inline keyboards and file downloads.
type Client struct {
	api         *tgbotapi.BotAPI
	cfg         Config
	log         *logger.Logger
	rateLimiter *rate.Limiter

	mu      sync.RWMutex
	running bool
	handler func(tgbotapi.Update)
}

// Config contains Telegram bot configuration
type Config struct {
	Token          string
	Debug          bool
	Timeout        int // Update timeout in seconds
	HTTPTimeout    time.Duration
	RateLimitBurst int // Rate limiter burst (default: 30)
	RateLimitRate  int // Rate limiter per second (default: 20)
}

// withDefaults fills in the zero-valued settings.
func (cfg Config) withDefaults() Config {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 30
	}
	if cfg.RateLimitRate == 0 {
		cfg.RateLimitRate = 20
	}
	return cfg
}

// NewClient creates a new Telegram bot client
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "telegram bot token is required")
	}
	cfg = cfg.withDefaults()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create telegram bot")
	}
	api.Debug = cfg.Debug

	log.Infof("Authorized on account %s", api.Self.UserName)

	return &Client{
		api:         api,
		cfg:         cfg,
		log:         log.With("component", "telegram_bot"),
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRate), cfg.RateLimitBurst),
	}, nil
}

// SetHandler sets the update handler. Must be called before Start.
func (c *Client) SetHandler(handler func(tgbotapi.Update)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

// Start begins long polling for updates. Blocks until ctx is cancelled.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return errors.New("bot is already running")
	}
	c.running = true
	c.mu.Unlock()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = c.cfg.Timeout
	updates := c.api.GetUpdatesChan(u)

	c.log.Info("Starting to poll for updates")

	for {
		select {
		case <-ctx.Done():
			c.log.Info("Stopping bot due to context cancellation")
			c.Stop()
			return ctx.Err()

		case update := <-updates:
			c.mu.RLock()
			handler := c.handler
			c.mu.RUnlock()
			if handler != nil {
				handler(update)
			}
		}
	}
}

// Stop halts update polling.
func (c *Client) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		c.api.StopReceivingUpdates()
		c.running = false
	}
}

// SendMessage sends a plain text message.
func (c *Client) SendMessage(chatID int64, text string) error {
	return c.send(tgbotapi.NewMessage(chatID, text))
}

// SendMessageWithKeyboard sends a message with an inline keyboard.
func (c *Client) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return c.send(msg)
}

// AnswerCallback acknowledges a callback query.
func (c *Client) AnswerCallback(callbackQueryID string, text string) error {
	_, err := c.api.Request(tgbotapi.NewCallback(callbackQueryID, text))
	return errors.Wrap(err, "failed to answer callback")
}

// GetFileData downloads a file (e.g. an uploaded photo) by file ID.
func (c *Client) GetFileData(ctx context.Context, fileID string) ([]byte, error) {
	url, err := c.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve file URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build file request")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to download file")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("file download failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) send(msg tgbotapi.MessageConfig) error {
	if err := c.rateLimiter.Wait(context.Background()); err != nil {
		return errors.Wrap(err, "rate limiter interrupted")
	}
	if _, err := c.api.Send(msg); err != nil {
		return errors.Wrap(err, "failed to send message")
	}
	return nil
}
