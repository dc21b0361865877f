package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/validation"
)

const (
	// bootstrapQuery selects candidate mail for a first or expired sync.
	bootstrapQuery = "newer_than:7d -category:promotions -category:social"
	bootstrapLimit = 50
	syncTimeout    = 2 * time.Minute
	summaryLength  = 280
)

const emailSummaryPrompt = `Summarize this email from a job candidate in at most two sentences
for the recruiter reviewing their application. Plain text only.

Subject: %s

%s
`

// MailboxService records candidate correspondence as application events.
type MailboxService struct {
	repo    MailboxRepository
	apps    ApplicationRepository
	client  MailClient
	matcher *ApplicationMatcher
	llm     Completer
	mailbox string
	logger  *zap.Logger
	sleep   func(time.Duration)
}

// NewMailboxService accepts a nil llm; summaries then fall back to a
// plain excerpt of the body.
func NewMailboxService(
	repo MailboxRepository,
	apps ApplicationRepository,
	client MailClient,
	llm Completer,
	mailbox string,
	logger *zap.Logger,
) *MailboxService {
	return &MailboxService{
		repo:    repo,
		apps:    apps,
		client:  client,
		matcher: NewApplicationMatcher(apps),
		llm:     llm,
		mailbox: mailbox,
		logger:  logger,
		sleep:   time.Sleep,
	}
}

// Run is the cron entry point.
func (s *MailboxService) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()
	if _, err := s.Sync(ctx); err != nil {
		s.logger.Error("Mailbox sync failed", zap.Error(err))
	}
}

// Sync processes mail that arrived since the stored cursor and returns how
// many messages were linked to applications. Without a cursor, or when the
// cursor has expired, it scans the last week instead.
func (s *MailboxService) Sync(ctx context.Context) (int, error) {
	cursor, err := s.repo.Cursor(ctx, s.mailbox)
	if err != nil {
		return 0, fmt.Errorf("read cursor: %w", err)
	}

	var ids []string
	var next uint64
	if cursor == 0 {
		s.logger.Info("Mailbox bootstrap sync", zap.String("mailbox", s.mailbox))
		ids, next, err = s.fullSync(ctx)
	} else {
		err = s.retry(3, time.Second, func() error {
			var e error
			ids, next, e = s.client.Since(ctx, cursor)
			return e
		})
		if IsHistoryExpired(err) {
			s.logger.Warn("Mailbox history expired, running full sync", zap.Uint64("cursor", cursor))
			ids, next, err = s.fullSync(ctx)
		}
	}
	if err != nil {
		return 0, fmt.Errorf("list messages: %w", err)
	}

	linked := 0
	for _, id := range ids {
		done, err := s.repo.IsProcessed(ctx, id)
		if err != nil {
			return linked, fmt.Errorf("check message %s: %w", id, err)
		}
		if done {
			continue
		}
		var msg *Message
		err = s.retry(2, 500*time.Millisecond, func() error {
			var e error
			msg, e = s.client.Get(ctx, id)
			return e
		})
		if err != nil {
			s.logger.Warn("Skipping unreadable message", zap.String("message_id", id), zap.Error(err))
			continue
		}
		ok, err := s.process(ctx, msg)
		if err != nil {
			s.logger.Warn("Message not processed", zap.String("message_id", id), zap.Error(err))
			continue
		}
		if ok {
			linked++
		}
		if err := s.repo.MarkProcessed(ctx, id); err != nil {
			return linked, fmt.Errorf("mark message %s: %w", id, err)
		}
	}

	if next > cursor {
		if err := s.repo.SaveCursor(ctx, s.mailbox, next); err != nil {
			return linked, fmt.Errorf("save cursor: %w", err)
		}
	}
	s.logger.Info("Mailbox sync finished",
		zap.Int("messages", len(ids)),
		zap.Int("linked", linked),
		zap.Uint64("history_id", max(next, cursor)))
	return linked, nil
}

func (s *MailboxService) fullSync(ctx context.Context) ([]string, uint64, error) {
	var ids []string
	var next uint64
	err := s.retry(3, time.Second, func() error {
		var e error
		ids, next, e = s.client.Recent(ctx, bootstrapQuery, bootstrapLimit)
		return e
	})
	return ids, next, err
}

// process logs msg on the matching application. It reports false for mail
// that matches no application.
func (s *MailboxService) process(ctx context.Context, msg *Message) (bool, error) {
	app, err := s.matcher.Match(ctx, msg.Subject, msg.From)
	if err != nil {
		return false, err
	}
	if app == nil {
		s.logger.Debug("No application for sender", zap.String("message_id", msg.ID))
		return false, nil
	}

	ev := &models.ApplicationEvent{
		ApplicationID: app.ID,
		EventType:     models.EventEmailReceived,
		Actor:         app.Email,
		Details:       fmt.Sprintf("Subject: %s\n\n%s", msg.Subject, s.summarize(ctx, msg)),
	}
	if err := s.apps.LogEvent(ctx, ev); err != nil {
		return false, fmt.Errorf("log event: %w", err)
	}
	s.logger.Info("Email linked to application",
		zap.String("message_id", msg.ID),
		zap.Uint("application_id", app.ID))
	return true, nil
}

func (s *MailboxService) summarize(ctx context.Context, msg *Message) string {
	text := validation.StripHTML(msg.Body)
	if s.llm != nil {
		summary, err := s.llm.Complete(ctx, fmt.Sprintf(emailSummaryPrompt, msg.Subject, truncate(text, maxPromptInput)))
		if err == nil && strings.TrimSpace(summary) != "" {
			return strings.TrimSpace(summary)
		}
		s.logger.Warn("Email summary failed, using excerpt", zap.String("message_id", msg.ID), zap.Error(err))
	}
	if len([]rune(text)) > summaryLength {
		return string([]rune(text)[:summaryLength]) + "..."
	}
	return text
}

// retry runs f up to attempts times with doubling waits. An expired
// history error is returned at once so the caller can fall back.
func (s *MailboxService) retry(attempts int, wait time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if IsHistoryExpired(err) {
			return err
		}
		if i < attempts-1 {
			s.logger.Warn("Mail API error, retrying", zap.Error(err), zap.Duration("wait", wait))
			s.sleep(wait)
			wait *= 2
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
