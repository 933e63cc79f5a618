package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"live-quiz-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestRosterUpsertAppendsInJoinOrder(t *testing.T) {
	r := NewRoster()
	r.Upsert(domain.ParticipantPatch{ID: "s1", DisplayName: strPtr("Alice")})
	got := r.Upsert(domain.ParticipantPatch{ID: "s2", DisplayName: strPtr("Bob"), AvatarReference: strPtr("bob.png")})

	require.Len(t, got, 2)
	assert.Equal(t, domain.Participant{ID: "s1", DisplayName: "Alice"}, got[0])
	assert.Equal(t, domain.Participant{ID: "s2", DisplayName: "Bob", AvatarReference: "bob.png"}, got[1])
}

func TestRosterUpsertMergesInPlace(t *testing.T) {
	r := NewRoster()
	r.Upsert(domain.ParticipantPatch{ID: "s1", DisplayName: strPtr("Alice"), AvatarReference: strPtr("a.png")})
	r.Upsert(domain.ParticipantPatch{ID: "s2", DisplayName: strPtr("Bob")})

	got := r.Upsert(domain.ParticipantPatch{ID: "s1", DisplayName: strPtr("Alice B.")})

	require.Len(t, got, 2)
	assert.Equal(t, domain.Participant{ID: "s1", DisplayName: "Alice B.", AvatarReference: "a.png"}, got[0], "unsupplied avatar must survive")
	assert.Equal(t, "s2", got[1].ID)
}

func TestRosterListIsACopy(t *testing.T) {
	r := NewRoster()
	got := r.Upsert(domain.ParticipantPatch{ID: "s1", DisplayName: strPtr("Alice")})
	got[0].DisplayName = "mutated"

	assert.Equal(t, "Alice", r.List()[0].DisplayName)
}

func TestRosterToleratesEmptyIdentity(t *testing.T) {
	r := NewRoster()
	r.Upsert(domain.ParticipantPatch{DisplayName: strPtr("anon")})
	got := r.Upsert(domain.ParticipantPatch{AvatarReference: strPtr("x.png")})

	require.Len(t, got, 1)
	assert.Equal(t, domain.Participant{DisplayName: "anon", AvatarReference: "x.png"}, got[0])
	assert.Equal(t, 1, r.Len())
}
