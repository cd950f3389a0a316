package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emcarter/chief-rota/pkg/core/model"
)

var (
	chief  = model.Member{ID: "bob", Name: "Bob", SlackID: "U001"}
	backup = model.Member{ID: "carol", Name: "Carol", SlackID: "U002"}
)

func TestPublicAnnouncement(t *testing.T) {
	text := publicAnnouncement(chief, backup, currentWeekStart)

	assert.Contains(t, text, "<@U001>")
	assert.Contains(t, text, "<@U002>")
	assert.Contains(t, text, "Mon Jun 09 2025")
}

func TestInternalNotice_IncludesChecklist(t *testing.T) {
	text := internalNotice(chief, backup, currentWeekStart)

	assert.Contains(t, text, "Chief:  <@U001>")
	assert.Contains(t, text, "Backup: <@U002>")
	assert.Contains(t, text, "Checklist")
	assert.Contains(t, text, "triage")
}

func TestReminderMessage(t *testing.T) {
	text := reminderMessage(chief, currentWeekStart)

	assert.Contains(t, text, "<@U001>")
	assert.Contains(t, text, "Reminder")
}

func TestHandoverMessage(t *testing.T) {
	text := handoverMessage(chief, backup, testWeekStart)

	assert.Contains(t, text, "<@U002>") // incoming
	assert.Contains(t, text, "<@U001>") // outgoing
	assert.Contains(t, text, "Mon Jun 16 2025")
}

func TestMention_FallsBackToName(t *testing.T) {
	noSlack := model.Member{ID: "dana", Name: "Dana"}
	text := reminderMessage(noSlack, currentWeekStart)

	assert.Contains(t, text, "Dana")
	assert.NotContains(t, text, "<@")
}
