package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/emcarter/chief-rota/pkg/core/model"
	"github.com/emcarter/chief-rota/pkg/core/schedule"
)

// Remind sends the mid-week reminder to the internal channel for the
// rotation week containing now.
//
// Unlike the weekly workflow there is no degraded path before the send:
// a missing record or an unresolvable chief fails the run with zero
// messages sent. Only the pin after a delivered reminder is best-effort.
// With withHandover set, a second best-effort message pairing this week's
// chief with next week's is sent when next week's assignment exists.
func Remind(
	ctx context.Context,
	store RosterStore,
	notifier Notifier,
	sched *schedule.Schedule,
	logger *zap.Logger,
	now time.Time,
	withHandover bool,
) error {
	weekStart := sched.WeekStartOnOrBefore(now)
	logger.Info("Starting reminder", zap.Time("week_start", weekStart))

	// Step 1: Look up this week's assignment
	assignment, err := store.GetAssignmentForWeek(ctx, weekStart)
	if err != nil {
		return fmt.Errorf("failed to look up assignment for week %s: %w",
			weekStart.Format("2006-01-02"), err)
	}
	if assignment == nil {
		return fmt.Errorf("week %s: %w", weekStart.Format("2006-01-02"), model.ErrNoRosterForWeek)
	}

	// Step 2: Resolve the chief from the active roster
	members, err := store.GetActiveMembers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch active members: %w", err)
	}

	chief, ok := findMember(members, assignment.ChiefID)
	if !ok {
		return fmt.Errorf("chief %s: %w", assignment.ChiefID, model.ErrChiefNotFound)
	}

	// Step 3: Send the reminder; the pin afterwards is best-effort
	text := reminderMessage(chief, weekStart)
	handle, err := notifier.SendInternal(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}

	logger.Info("Reminder sent",
		zap.String("chief_id", chief.ID),
		zap.String("ts", handle))

	if err := notifier.MarkCurrent(ctx, model.ChannelInternal, handle); err != nil {
		logger.Warn("Failed to pin reminder", zap.String("ts", handle), zap.Error(err))
	}

	// Step 4: Optional handover note, best-effort end to end
	if withHandover {
		sendHandover(ctx, store, notifier, sched, logger, chief, weekStart, members)
	}

	return nil
}

// sendHandover looks up next week's assignment and, when one exists with a
// resolvable chief, posts a handover note. Every failure here is logged
// and swallowed; the reminder run has already succeeded.
func sendHandover(
	ctx context.Context,
	store RosterStore,
	notifier Notifier,
	sched *schedule.Schedule,
	logger *zap.Logger,
	outgoing model.Member,
	weekStart time.Time,
	members []model.Member,
) {
	nextWeekStart := sched.WeekStartOnOrAfter(weekStart.AddDate(0, 0, 1))

	next, err := store.GetAssignmentForWeek(ctx, nextWeekStart)
	if err != nil {
		logger.Warn("Failed to look up next week's assignment", zap.Error(err))
		return
	}
	if next == nil {
		logger.Debug("No assignment for next week yet, skipping handover",
			zap.Time("next_week_start", nextWeekStart))
		return
	}

	incoming, ok := findMember(members, next.ChiefID)
	if !ok {
		logger.Warn("Next week's chief not in active roster, skipping handover",
			zap.String("chief_id", next.ChiefID))
		return
	}

	if _, err := notifier.SendInternal(ctx, handoverMessage(outgoing, incoming, nextWeekStart)); err != nil {
		logger.Warn("Failed to send handover note", zap.Error(err))
		return
	}

	logger.Info("Handover note sent",
		zap.String("outgoing_id", outgoing.ID),
		zap.String("incoming_id", incoming.ID))
}

// findMember locates a member by id in the given list
func findMember(members []model.Member, id string) (model.Member, bool) {
	for _, m := range members {
		if m.ID == id {
			return m, true
		}
	}
	return model.Member{}, false
}
