package services

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

// Message is the part of a mail message the mailbox sync reads.
type Message struct {
	ID      string
	From    string
	Subject string
	Body    string
}

// MailClient lists and fetches messages of one mailbox.
type MailClient interface {
	// Recent returns message IDs matching query together with the
	// mailbox's current history ID.
	Recent(ctx context.Context, query string, limit int64) ([]string, uint64, error)
	// Since returns IDs of messages added after historyID. It returns an
	// error satisfying IsHistoryExpired when historyID is too old.
	Since(ctx context.Context, historyID uint64) ([]string, uint64, error)
	Get(ctx context.Context, id string) (*Message, error)
}

// GmailClient is the MailClient for the authorised user's Gmail mailbox.
type GmailClient struct {
	svc *gmail.Service
}

func NewGmailClient(svc *gmail.Service) *GmailClient {
	return &GmailClient{svc: svc}
}

func (c *GmailClient) Recent(ctx context.Context, query string, limit int64) ([]string, uint64, error) {
	resp, err := c.svc.Users.Messages.List("me").Q(query).MaxResults(limit).Context(ctx).Do()
	if err != nil {
		return nil, 0, err
	}
	profile, err := c.svc.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	return ids, profile.HistoryId, nil
}

func (c *GmailClient) Since(ctx context.Context, historyID uint64) ([]string, uint64, error) {
	var ids []string
	var latest uint64
	err := c.svc.Users.History.List("me").
		StartHistoryId(historyID).
		HistoryTypes("messageAdded").
		Pages(ctx, func(resp *gmail.ListHistoryResponse) error {
			for _, h := range resp.History {
				for _, added := range h.MessagesAdded {
					if added.Message != nil {
						ids = append(ids, added.Message.Id)
					}
				}
			}
			latest = max(latest, resp.HistoryId)
			return nil
		})
	if err != nil {
		return nil, 0, err
	}
	return ids, latest, nil
}

func (c *GmailClient) Get(ctx context.Context, id string) (*Message, error) {
	msg, err := c.svc.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	headers := parseHeaders(msg)
	return &Message{
		ID:      msg.Id,
		From:    headers["From"],
		Subject: headers["Subject"],
		Body:    messageBody(msg),
	}, nil
}

// IsHistoryExpired reports Gmail's 404 for a start history ID it no longer keeps.
func IsHistoryExpired(err error) bool {
	var gErr *googleapi.Error
	return errors.As(err, &gErr) && gErr.Code == http.StatusNotFound
}

func parseHeaders(msg *gmail.Message) map[string]string {
	res := make(map[string]string)
	if msg.Payload == nil {
		return res
	}
	for _, h := range msg.Payload.Headers {
		res[h.Name] = h.Value
	}
	return res
}

// messageBody prefers the plain-text part, then HTML.
func messageBody(msg *gmail.Message) string {
	if msg.Payload == nil {
		return ""
	}
	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		return decodePart(msg.Payload.Body.Data)
	}
	for _, mime := range []string{"text/plain", "text/html"} {
		for _, part := range msg.Payload.Parts {
			if part.MimeType == mime && part.Body != nil && part.Body.Data != "" {
				return decodePart(part.Body.Data)
			}
		}
	}
	return ""
}

func decodePart(data string) string {
	b, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		b, _ = base64.RawURLEncoding.DecodeString(data)
	}
	return string(b)
}
