package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emcarter/chief-rota/pkg/core/model"
)

// GetAssignmentForWeek returns the assignment record for the given
// week-start date, or nil when none exists
func (db *DB) GetAssignmentForWeek(ctx context.Context, weekStart time.Time) (*model.WeeklyAssignment, error) {
	row := db.pool.QueryRow(ctx, `
		SELECT id, week_start, chief_id, backup_id, status, public_message_ts, internal_message_ts
		FROM weekly_assignments
		WHERE week_start = $1
	`, weekStart)

	var a model.WeeklyAssignment
	err := row.Scan(&a.ID, &a.WeekStart, &a.ChiefID, &a.BackupID, &a.Status,
		&a.PublicMessageTS, &a.InternalMessageTS)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment for week: %w", err)
	}

	// DATE columns come back at midnight in the session timezone; keep
	// week-start values date-only UTC throughout
	a.WeekStart = normalizeDate(a.WeekStart)

	return &a, nil
}

// GetActiveMembers returns all members currently eligible for selection
func (db *DB) GetActiveMembers(ctx context.Context) ([]model.Member, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, name, slack_id, last_served, active, volunteer, times_served
		FROM members
		WHERE active = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.SlackID, &m.LastServed,
			&m.Active, &m.Volunteer, &m.TimesServed); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		if m.LastServed != nil {
			normalized := normalizeDate(*m.LastServed)
			m.LastServed = &normalized
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read members: %w", err)
	}

	return members, nil
}

// CreateAssignment inserts a new weekly assignment record and returns its id
func (db *DB) CreateAssignment(ctx context.Context, assignment *model.WeeklyAssignment) (string, error) {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO weekly_assignments (id, week_start, chief_id, backup_id, status, public_message_ts, internal_message_ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, assignment.ID, assignment.WeekStart, assignment.ChiefID, assignment.BackupID,
		assignment.Status, assignment.PublicMessageTS, assignment.InternalMessageTS)
	if err != nil {
		return "", fmt.Errorf("failed to insert assignment: %w", err)
	}

	return assignment.ID, nil
}

// UpdateChiefLastServed records that the member served on the given date:
// last-served moves forward, the lifetime count increments, and any
// volunteer flag is cleared
func (db *DB) UpdateChiefLastServed(ctx context.Context, memberID string, servedOn time.Time) error {
	tag, err := db.pool.Exec(ctx, `
		UPDATE members
		SET last_served = $2, times_served = times_served + 1, volunteer = FALSE
		WHERE id = $1
	`, memberID, servedOn)
	if err != nil {
		return fmt.Errorf("failed to update member %s: %w", memberID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member %s not found", memberID)
	}

	return nil
}

// UpdateAssignmentMessageHandles stores the sent notification handles on
// an existing assignment record
func (db *DB) UpdateAssignmentMessageHandles(ctx context.Context, id, publicTS, internalTS string) error {
	tag, err := db.pool.Exec(ctx, `
		UPDATE weekly_assignments
		SET public_message_ts = $2, internal_message_ts = $3
		WHERE id = $1
	`, id, publicTS, internalTS)
	if err != nil {
		return fmt.Errorf("failed to update assignment %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s not found", id)
	}

	return nil
}

// normalizeDate rebuilds a scanned DATE value as date-only UTC
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
