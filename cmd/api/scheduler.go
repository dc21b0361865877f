package main

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger routes cron's own messages through zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

// jobWrappers recover panics and skip a run while the previous one of the
// same job is still going, so a slow mailbox sync never overlaps itself.
func jobWrappers(logger *zap.Logger) []cron.JobWrapper {
	l := cronLogger{log: logger.Sugar()}
	return []cron.JobWrapper{cron.Recover(l), cron.SkipIfStillRunning(l)}
}

func newScheduler(logger *zap.Logger) *cron.Cron {
	return cron.New(
		cron.WithLogger(cronLogger{log: logger.Sugar()}),
		cron.WithChain(jobWrappers(logger)...),
	)
}
