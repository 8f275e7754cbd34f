package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Service struct {
	entries Repository
	logger  zerolog.Logger
}

func NewService(entries Repository, logger zerolog.Logger) *Service {
	return &Service{entries: entries, logger: logger}
}

// Record appends one audit entry. It is best-effort and never fails the
// caller: a failed insert is retried once without the account reference, and
// a second failure is logged and swallowed. Callers must never branch on the
// outcome of an audit write.
func (s *Service) Record(ctx context.Context, accountID *uuid.UUID, username, action string) {
	entry := &LogEntry{
		AccountID: accountID,
		Username:  username,
		Action:    action,
	}
	if err := s.entries.Insert(ctx, entry); err == nil {
		return
	}

	retry := &LogEntry{
		Username: username,
		Action:   action,
	}
	if err := s.entries.Insert(ctx, retry); err != nil {
		s.logger.Error().Err(err).
			Str("username", username).
			Str("action", action).
			Msg("audit write failed")
	}
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*LogEntry, int, error) {
	return s.entries.List(ctx, limit, offset)
}
