package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/justsurfingit/job-board/internal/models"
)

// ApplicationMatcher links an incoming mail to the application it is about.
type ApplicationMatcher struct {
	apps ApplicationRepository
}

func NewApplicationMatcher(apps ApplicationRepository) *ApplicationMatcher {
	return &ApplicationMatcher{apps: apps}
}

// Match finds applications whose candidate sent the mail. With several,
// the one whose job title appears in the subject wins, else the newest.
// A nil application means no match.
func (m *ApplicationMatcher) Match(ctx context.Context, subject, rawSender string) (*models.Application, error) {
	addr := strings.ToLower(strings.TrimSpace(rawSender))
	if parsed, err := mail.ParseAddress(rawSender); err == nil {
		addr = strings.ToLower(parsed.Address)
	}
	if !strings.Contains(addr, "@") {
		return nil, nil
	}

	apps, err := m.apps.FindApplicationsByEmail(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("find applications for %s: %w", addr, err)
	}
	if len(apps) == 0 {
		return nil, nil
	}

	subjectLower := strings.ToLower(subject)
	for i := range apps {
		title := strings.ToLower(strings.TrimSpace(apps[i].Job.Title))
		// Very short titles match almost any subject.
		if len(title) < 3 {
			continue
		}
		if strings.Contains(subjectLower, title) {
			return &apps[i], nil
		}
	}
	return &apps[0], nil
}
