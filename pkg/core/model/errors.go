package model

import "errors"

var (
	ErrNoCandidates    = errors.New("no active members available for selection")
	ErrNoRosterForWeek = errors.New("no assignment exists for this week")
	ErrChiefNotFound   = errors.New("recorded chief is not in the active member list")
)
