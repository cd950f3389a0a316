package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emcarter/chief-rota/pkg/core/model"
	"github.com/emcarter/chief-rota/pkg/core/schedule"
	"github.com/emcarter/chief-rota/pkg/core/selector"
)

// OutcomeKind labels the terminal state of a weekly assignment run
type OutcomeKind string

const (
	OutcomeCreated                OutcomeKind = "created"
	OutcomeAlreadyExists          OutcomeKind = "already_exists"
	OutcomeInsufficientCandidates OutcomeKind = "insufficient_candidates"
)

// AssignmentOutcome is the caller-facing result of the weekly workflow.
// Exactly one of the payload fields is meaningful per kind: Assignment for
// Created, WeekStart for AlreadyExists, Candidates for
// InsufficientCandidates.
type AssignmentOutcome struct {
	Kind       OutcomeKind
	Assignment *model.WeeklyAssignment
	WeekStart  time.Time
	Candidates int
}

// AssignWeekly runs the weekly assignment workflow for the rotation week
// starting on or after now.
//
// The created record is the system of record: once it is persisted the run
// reports success even if notification or fairness bookkeeping degrades.
// Store failures before the record exists abort cleanly, and candidate
// insufficiency is an outcome rather than an error.
func AssignWeekly(
	ctx context.Context,
	store RosterStore,
	notifier Notifier,
	sched *schedule.Schedule,
	logger *zap.Logger,
	rng *rand.Rand,
	now time.Time,
) (*AssignmentOutcome, error) {
	// Step 1: Compute the target week
	weekStart := sched.WeekStartOnOrAfter(now)
	logger.Info("Starting weekly assignment", zap.Time("week_start", weekStart))

	// Step 2: Check for an existing record
	logger.Debug("Checking for existing assignment")
	existing, err := store.GetAssignmentForWeek(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to look up assignment for week %s: %w",
			weekStart.Format("2006-01-02"), err)
	}
	if existing != nil {
		logger.Info("Assignment already exists for week",
			zap.Time("week_start", weekStart),
			zap.String("assignment_id", existing.ID))
		return &AssignmentOutcome{Kind: OutcomeAlreadyExists, WeekStart: weekStart}, nil
	}

	// Step 3: Fetch candidates
	logger.Debug("Fetching active members")
	members, err := store.GetActiveMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active members: %w", err)
	}
	logger.Debug("Found active members", zap.Int("count", len(members)))

	// Step 4: Select chief and backup
	selection, err := selector.Pick(members, rng)
	if err != nil {
		if errors.Is(err, model.ErrNoCandidates) {
			logger.Warn("No active members to select from")
			return &AssignmentOutcome{Kind: OutcomeInsufficientCandidates, Candidates: len(members)}, nil
		}
		return nil, fmt.Errorf("selection failed: %w", err)
	}

	logger.Info("Selected chief and backup",
		zap.String("chief_id", selection.Chief.ID),
		zap.String("chief", selection.Chief.Name),
		zap.String("backup_id", selection.Backup.ID),
		zap.String("backup", selection.Backup.Name))

	// Step 5: Best-effort sweep of last week's pinned notices. Failure
	// never blocks the run; pins just accumulate until the next sweep.
	if cleared, err := notifier.UnmarkAll(ctx); err != nil {
		logger.Warn("Failed to clear previously pinned notices", zap.Error(err))
	} else if cleared > 0 {
		logger.Debug("Cleared previously pinned notices", zap.Int("count", cleared))
	}

	// Step 6: Persist the assignment record. This is the last step that
	// can abort the run; nothing outside the store has committed yet.
	assignment := &model.WeeklyAssignment{
		ID:        uuid.New().String(),
		WeekStart: weekStart,
		ChiefID:   selection.Chief.ID,
		BackupID:  selection.Backup.ID,
		Status:    model.StatusPlanned,
	}

	logger.Info("Creating assignment record", zap.String("id", assignment.ID))
	if _, err := store.CreateAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	// Step 7: Best-effort fairness bookkeeping on the chief
	if err := store.UpdateChiefLastServed(ctx, selection.Chief.ID, weekStart); err != nil {
		logger.Warn("Failed to update chief's last-served date",
			zap.String("member_id", selection.Chief.ID),
			zap.Error(err))
	}

	// Step 8: Notify both channels; the assignment stands even if nobody
	// could be told
	notices, err := sendAssignmentNotices(ctx, notifier, logger, selection, weekStart)
	if err != nil {
		logger.Warn("Notification step failed", zap.Error(err))
		return &AssignmentOutcome{Kind: OutcomeCreated, Assignment: assignment}, nil
	}

	// Step 9: Best-effort write-back of message handles for future sweeps
	assignment.PublicMessageTS = notices.publicTS
	assignment.InternalMessageTS = notices.internalTS
	if err := store.UpdateAssignmentMessageHandles(ctx, assignment.ID, notices.publicTS, notices.internalTS); err != nil {
		logger.Warn("Failed to persist message handles",
			zap.String("assignment_id", assignment.ID),
			zap.Error(err))
	}

	logger.Info("Weekly assignment completed",
		zap.String("assignment_id", assignment.ID),
		zap.Time("week_start", weekStart))

	return &AssignmentOutcome{Kind: OutcomeCreated, Assignment: assignment}, nil
}
