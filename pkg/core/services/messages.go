package services

import (
	"fmt"
	"time"

	"github.com/emcarter/chief-rota/pkg/core/model"
)

// mention formats a member as a Slack mention, falling back to the plain
// name when no Slack ID is on record
func mention(m model.Member) string {
	if m.SlackID == "" {
		return m.Name
	}
	return fmt.Sprintf("<@%s>", m.SlackID)
}

func formatWeek(weekStart time.Time) string {
	return weekStart.Format("Mon Jan 02 2006")
}

// publicAnnouncement is the short announcement posted to the public channel
func publicAnnouncement(chief, backup model.Member, weekStart time.Time) string {
	return fmt.Sprintf(
		":shield: Support Chief for the week of %s is %s (backup: %s).\nPlease direct all support questions their way first.",
		formatWeek(weekStart), mention(chief), mention(backup),
	)
}

// internalNotice is the detailed notice plus operational checklist posted
// to the internal channel
func internalNotice(chief, backup model.Member, weekStart time.Time) string {
	return fmt.Sprintf(
		`:shield: Rotation for the week of %s

Chief:  %s
Backup: %s

Checklist for the chief:
• Watch the support channel and triage incoming questions
• Keep the on-call dashboard open during working hours
• Escalate anything you can't resolve within an hour
• Hand unfinished threads over to next week's chief on Friday

%s steps in if the chief is unavailable.`,
		formatWeek(weekStart), mention(chief), mention(backup), mention(backup),
	)
}

// reminderMessage nudges the current chief mid-week
func reminderMessage(chief model.Member, weekStart time.Time) string {
	return fmt.Sprintf(
		"Reminder: %s is Support Chief for the week of %s.\nPlease keep an eye on the support channel and triage open questions.",
		mention(chief), formatWeek(weekStart),
	)
}

// handoverMessage pairs the outgoing chief with next week's incoming one
func handoverMessage(outgoing, incoming model.Member, nextWeekStart time.Time) string {
	return fmt.Sprintf(
		"Handover: %s takes over as Support Chief from %s on %s.\nPlease walk through any open threads together before then.",
		mention(incoming), mention(outgoing), formatWeek(nextWeekStart),
	)
}
