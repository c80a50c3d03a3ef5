package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"verifybot/internal/application"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	ErrQueueFull = errors.New("telegram notification queue is full")
	ErrStopped   = errors.New("telegram notifier stopped")
)

const defaultQueueSize = 64

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier forwards verification events to an admin chat. Publish only
// enqueues; delivery happens in Run.
type Notifier struct {
	api    sender
	chatID int64
	logger application.Logger

	queue    chan application.VerificationEvent
	stop     chan struct{}
	stopOnce sync.Once
}

func NewNotifier(token string, chatID int64, queueSize int, logger application.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	logger.Info("telegram notifier authorized on account %s", bot.Self.UserName)
	return newNotifier(bot, chatID, queueSize, logger), nil
}

func newNotifier(api sender, chatID int64, queueSize int, logger application.Logger) *Notifier {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Notifier{
		api:    api,
		chatID: chatID,
		logger: logger,
		queue:  make(chan application.VerificationEvent, queueSize),
		stop:   make(chan struct{}),
	}
}

func (n *Notifier) Name() string {
	return "telegram notifier"
}

func (n *Notifier) Init() error {
	return nil
}

func (n *Notifier) Publish(_ context.Context, event application.VerificationEvent) error {
	select {
	case <-n.stop:
		return ErrStopped
	default:
	}

	select {
	case n.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (n *Notifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			n.drain()
			return
		case <-n.stop:
			n.drain()
			return
		case event := <-n.queue:
			n.send(event)
		}
	}
}

func (n *Notifier) Stop() {
	n.stopOnce.Do(func() { close(n.stop) })
}

// drain delivers what is already queued without waiting for more.
func (n *Notifier) drain() {
	for {
		select {
		case event := <-n.queue:
			n.send(event)
		default:
			return
		}
	}
}

func (n *Notifier) send(event application.VerificationEvent) {
	msg := tgbotapi.NewMessage(n.chatID, formatEvent(event))
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Warn("failed to send telegram notification for %s: %v", event.RequesterID, err)
	}
}

func formatEvent(e application.VerificationEvent) string {
	var sb strings.Builder

	switch e.Source {
	case application.SourceEdit:
		sb.WriteString("Player id updated\n\n")
	case application.SourceAdminEdit:
		sb.WriteString("Player id reassigned by admin\n\n")
	default:
		sb.WriteString("Player verified\n\n")
	}

	sb.WriteString(fmt.Sprintf("PlayFab ID: %s\n", e.ExternalID))
	sb.WriteString(fmt.Sprintf("Player: %s\n", valueOrDash(e.ExternalLabel)))
	clan := "no"
	if e.AllowListed {
		clan = "yes"
	}
	sb.WriteString(fmt.Sprintf("Clan: %s\n", clan))
	sb.WriteString(fmt.Sprintf("Discord: %s (%s)\n", valueOrDash(e.RequesterLabel), e.RequesterID))
	if e.Source == application.SourceAdminEdit && e.ActorID != "" {
		sb.WriteString(fmt.Sprintf("Admin: %s\n", e.ActorID))
	}
	sb.WriteString(fmt.Sprintf("At: %s", e.At.UTC().Format("2006-01-02 15:04:05 MST")))
	return sb.String()
}

func valueOrDash(v string) string {
	if v == "" {
		return "—"
	}
	return v
}
