package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/services"
)

var (
	_ services.TenantRepository      = (*Repository)(nil)
	_ services.JobRepository         = (*Repository)(nil)
	_ services.ApplicationRepository = (*Repository)(nil)
	_ services.MailboxRepository     = (*Repository)(nil)
)

func TestFoundMapsMissingRows(t *testing.T) {
	err := found(fmt.Errorf("first: %w", gorm.ErrRecordNotFound), "Job not found")
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	msg, _ := apperr.MessageOf(err)
	assert.Equal(t, "Job not found", msg)

	other := errors.New("connection reset")
	assert.Same(t, other, found(other, "Job not found"))
	assert.NoError(t, found(nil, "Job not found"))
}

func TestDuplicateMapsUniqueViolations(t *testing.T) {
	err := duplicate(gorm.ErrDuplicatedKey, "A workspace with this slug already exists")
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	other := errors.New("connection reset")
	assert.Same(t, other, duplicate(other, "x"))
	assert.NoError(t, duplicate(nil, "x"))
}
