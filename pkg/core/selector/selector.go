package selector

import (
	"math/rand"
	"sort"

	"github.com/emcarter/chief-rota/pkg/core/model"
)

// Selection is the ordered pair picked for one rotation week
type Selection struct {
	Chief  model.Member
	Backup model.Member
}

// Pick chooses a chief and backup from the given candidates.
//
// Ordering is a three-level comparator:
//  1. Volunteers sort before non-volunteers.
//  2. Within each group, ascending by last-served date; members who have
//     never served sort first.
//  3. Exact ties are broken uniformly at random using rng.
//
// The chief is first in the resulting order, the backup second. With a
// single candidate the chief doubles as backup.
func Pick(candidates []model.Member, rng *rand.Rand) (*Selection, error) {
	if len(candidates) == 0 {
		return nil, model.ErrNoCandidates
	}

	// Shuffle before a stable sort so that members comparing equal end up
	// in uniformly random relative order.
	ordered := make([]model.Member, len(candidates))
	copy(ordered, candidates)
	rng.Shuffle(len(ordered), func(i, j int) {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	})

	sort.SliceStable(ordered, func(i, j int) bool {
		return less(ordered[i], ordered[j])
	})

	selection := &Selection{
		Chief:  ordered[0],
		Backup: ordered[0],
	}
	if len(ordered) > 1 {
		selection.Backup = ordered[1]
	}

	return selection, nil
}

// less reports whether a has strictly higher selection priority than b
func less(a, b model.Member) bool {
	if a.Volunteer != b.Volunteer {
		return a.Volunteer
	}

	// Never served wins over any date
	switch {
	case a.LastServed == nil && b.LastServed == nil:
		return false
	case a.LastServed == nil:
		return true
	case b.LastServed == nil:
		return false
	}

	return a.LastServed.Before(*b.LastServed)
}
