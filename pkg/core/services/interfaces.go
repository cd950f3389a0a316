package services

import (
	"context"
	"time"

	"github.com/emcarter/chief-rota/pkg/core/model"
)

// RosterStore defines the roster store operations the workflows consume
type RosterStore interface {
	// GetAssignmentForWeek returns nil, nil when no record exists for the week
	GetAssignmentForWeek(ctx context.Context, weekStart time.Time) (*model.WeeklyAssignment, error)
	GetActiveMembers(ctx context.Context) ([]model.Member, error)
	CreateAssignment(ctx context.Context, assignment *model.WeeklyAssignment) (string, error)
	UpdateChiefLastServed(ctx context.Context, memberID string, servedOn time.Time) error
	UpdateAssignmentMessageHandles(ctx context.Context, id, publicTS, internalTS string) error
}

// Notifier defines the messaging operations the workflows consume.
// Handles are opaque references to previously sent messages; marking a
// message makes it the visible reference for the current week.
type Notifier interface {
	SendPublic(ctx context.Context, text string) (string, error)
	SendInternal(ctx context.Context, text string) (string, error)
	MarkCurrent(ctx context.Context, ch model.Channel, handle string) error
	UnmarkCurrent(ctx context.Context, ch model.Channel, handle string) error
	ListCurrentlyMarked(ctx context.Context, ch model.Channel) ([]string, error)
	// UnmarkAll clears every marked message in both channels and returns
	// how many were cleared
	UnmarkAll(ctx context.Context) (int, error)
}
