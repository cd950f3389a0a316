package model

import "time"

// Channel identifies one of the two notification channels
type Channel string

const (
	ChannelPublic   Channel = "public"
	ChannelInternal Channel = "internal"
)

// AssignmentStatus is the lifecycle status of a weekly assignment record
type AssignmentStatus string

const (
	StatusPlanned AssignmentStatus = "Planned"
)

// Member represents a rotation-eligible person from the roster store
type Member struct {
	ID          string
	Name        string
	SlackID     string
	LastServed  *time.Time // nil means never served
	Active      bool
	Volunteer   bool
	TimesServed int
}

// WeeklyAssignment represents one rotation week's chief/backup record
type WeeklyAssignment struct {
	ID        string
	WeekStart time.Time // always a Monday, date-only UTC
	ChiefID   string
	BackupID  string
	Status    AssignmentStatus

	// Message timestamps of the sent notifications, used to locate and
	// unpin them in later weeks. Empty until notification succeeds.
	PublicMessageTS   string
	InternalMessageTS string
}
