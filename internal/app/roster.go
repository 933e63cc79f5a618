package app

import "live-quiz-service/internal/domain"

// Roster is the ordered, identity-unique participant list of one room.
// It is not safe for concurrent use; Room guards it.
type Roster struct {
	entries []domain.Participant
	index   map[string]int
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{index: make(map[string]int)}
}

// Upsert merges patch into the entry with the same ID, keeping its position,
// or appends a new entry. It returns a copy of the whole roster.
func (r *Roster) Upsert(patch domain.ParticipantPatch) []domain.Participant {
	if pos, ok := r.index[patch.ID]; ok {
		applyPatch(&r.entries[pos], patch)
		return r.List()
	}

	entry := domain.Participant{ID: patch.ID}
	applyPatch(&entry, patch)
	r.index[patch.ID] = len(r.entries)
	r.entries = append(r.entries, entry)
	return r.List()
}

// List returns a copy of the roster in join order.
func (r *Roster) List() []domain.Participant {
	out := make([]domain.Participant, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len reports the number of entries.
func (r *Roster) Len() int {
	return len(r.entries)
}

func applyPatch(p *domain.Participant, patch domain.ParticipantPatch) {
	if patch.DisplayName != nil {
		p.DisplayName = *patch.DisplayName
	}
	if patch.AvatarReference != nil {
		p.AvatarReference = *patch.AvatarReference
	}
}
