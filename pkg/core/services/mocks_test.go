package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/emcarter/chief-rota/pkg/core/model"
)

// mockRosterStore implements RosterStore for testing
type mockRosterStore struct {
	assignments map[string]*model.WeeklyAssignment // keyed by week-start date
	members     []model.Member

	created           []*model.WeeklyAssignment
	lastServedUpdates []string
	handleUpdates     []string

	getAssignmentErr error
	getMembersErr    error
	createErr        error
	updateChiefErr   error
	updateHandlesErr error
}

func newMockRosterStore() *mockRosterStore {
	return &mockRosterStore{
		assignments: make(map[string]*model.WeeklyAssignment),
	}
}

func weekKey(weekStart time.Time) string {
	return weekStart.Format("2006-01-02")
}

func (m *mockRosterStore) GetAssignmentForWeek(ctx context.Context, weekStart time.Time) (*model.WeeklyAssignment, error) {
	if m.getAssignmentErr != nil {
		return nil, m.getAssignmentErr
	}
	return m.assignments[weekKey(weekStart)], nil
}

func (m *mockRosterStore) GetActiveMembers(ctx context.Context) ([]model.Member, error) {
	if m.getMembersErr != nil {
		return nil, m.getMembersErr
	}
	return m.members, nil
}

func (m *mockRosterStore) CreateAssignment(ctx context.Context, assignment *model.WeeklyAssignment) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	stored := *assignment
	m.assignments[weekKey(assignment.WeekStart)] = &stored
	m.created = append(m.created, &stored)
	return assignment.ID, nil
}

func (m *mockRosterStore) UpdateChiefLastServed(ctx context.Context, memberID string, servedOn time.Time) error {
	if m.updateChiefErr != nil {
		return m.updateChiefErr
	}
	m.lastServedUpdates = append(m.lastServedUpdates, memberID)
	return nil
}

func (m *mockRosterStore) UpdateAssignmentMessageHandles(ctx context.Context, id, publicTS, internalTS string) error {
	if m.updateHandlesErr != nil {
		return m.updateHandlesErr
	}
	m.handleUpdates = append(m.handleUpdates, id)
	if a, ok := m.assignments[findWeekByID(m.assignments, id)]; ok {
		a.PublicMessageTS = publicTS
		a.InternalMessageTS = internalTS
	}
	return nil
}

func findWeekByID(assignments map[string]*model.WeeklyAssignment, id string) string {
	for week, a := range assignments {
		if a.ID == id {
			return week
		}
	}
	return ""
}

// mockNotifier implements Notifier for testing. The two send sequences
// run concurrently, so recorded state is guarded by a mutex.
type mockNotifier struct {
	mu sync.Mutex

	publicSends   []string
	internalSends []string
	marked        []string // "<channel>:<handle>"
	unmarked      []string
	pinned        map[model.Channel][]string

	sendPublicErr   error
	sendInternalErr error
	markErr         error
	unmarkAllErr    error

	// when set, only this internal send call (1-based) fails
	sendInternalErrOnCall int

	internalCalls  int
	unmarkAllCalls int
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{
		pinned: make(map[model.Channel][]string),
	}
}

func (m *mockNotifier) SendPublic(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendPublicErr != nil {
		return "", m.sendPublicErr
	}
	m.publicSends = append(m.publicSends, text)
	return fmt.Sprintf("public-ts-%d", len(m.publicSends)), nil
}

func (m *mockNotifier) SendInternal(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.internalCalls++
	if m.sendInternalErr != nil {
		return "", m.sendInternalErr
	}
	if m.sendInternalErrOnCall != 0 && m.internalCalls == m.sendInternalErrOnCall {
		return "", fmt.Errorf("send failed on call %d", m.internalCalls)
	}
	m.internalSends = append(m.internalSends, text)
	return fmt.Sprintf("internal-ts-%d", len(m.internalSends)), nil
}

func (m *mockNotifier) MarkCurrent(ctx context.Context, ch model.Channel, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markErr != nil {
		return m.markErr
	}
	m.marked = append(m.marked, string(ch)+":"+handle)
	return nil
}

func (m *mockNotifier) UnmarkCurrent(ctx context.Context, ch model.Channel, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unmarked = append(m.unmarked, string(ch)+":"+handle)
	return nil
}

func (m *mockNotifier) ListCurrentlyMarked(ctx context.Context, ch model.Channel) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pinned[ch], nil
}

func (m *mockNotifier) UnmarkAll(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unmarkAllCalls++
	if m.unmarkAllErr != nil {
		return 0, m.unmarkAllErr
	}
	cleared := len(m.pinned[model.ChannelPublic]) + len(m.pinned[model.ChannelInternal])
	m.pinned = make(map[model.Channel][]string)
	return cleared, nil
}

func (m *mockNotifier) totalSends() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.publicSends) + len(m.internalSends)
}
