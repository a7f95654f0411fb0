package update_notes

import (
	"context"

	"github.com/google/uuid"
)

type TurnsService interface {
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
