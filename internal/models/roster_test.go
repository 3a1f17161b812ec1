package models

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRoster_PrefersHigherRole(t *testing.T) {
	roster := NormalizeRoster([]EnrollmentRecord{
		{Username: "A", Role: 0, EnrolledAt: "2025-01-01"},
		{Username: "A", Role: 1, EnrolledAt: "2025-01-02"},
		{Username: "B", Role: 1, EnrolledAt: "2025-01-05"},
	})

	require.Len(t, roster, 2)
	assert.Equal(t, 1, roster["A"].Role)
	assert.Equal(t, "2025-01-02", roster["A"].EnrolledAt)
	assert.Equal(t, []string{"A", "B"}, roster.Staff())
}

func TestNormalizeRoster_RoleTiePrefersLaterEnrollment(t *testing.T) {
	roster := NormalizeRoster([]EnrollmentRecord{
		{ID: 1, Username: "A", Role: 1, EnrolledAt: "2025-01-01T10:00:00Z"},
		{ID: 2, Username: "A", Role: 1, EnrolledAt: "2025-03-01T10:00:00Z"},
	})

	assert.Equal(t, int64(2), roster["A"].ID)
}

func TestNormalizeRoster_HigherRoleBeatsLaterEnrollment(t *testing.T) {
	roster := NormalizeRoster([]EnrollmentRecord{
		{ID: 1, Username: "A", Role: 2, EnrolledAt: "2025-01-01"},
		{ID: 2, Username: "A", Role: 1, EnrolledAt: "2025-06-01"},
	})

	assert.Equal(t, int64(1), roster["A"].ID)
	assert.Equal(t, 2, roster["A"].Role)
}

func TestNormalizeRoster_FullTieKeepsFirstSeen(t *testing.T) {
	roster := NormalizeRoster([]EnrollmentRecord{
		{ID: 1, Username: "A", Role: 1, EnrolledAt: "2025-01-01"},
		{ID: 2, Username: "A", Role: 1, EnrolledAt: "2025-01-01"},
	})

	assert.Equal(t, int64(1), roster["A"].ID)
}

func TestNormalizeRoster_DropsRecordsWithoutUsername(t *testing.T) {
	roster := NormalizeRoster([]EnrollmentRecord{
		{Username: "", Role: 5, EnrolledAt: "2025-01-01"},
		{Username: "A", Role: 0},
	})

	require.Len(t, roster, 1)
	_, ok := roster["A"]
	assert.True(t, ok)
}

func TestNormalizeRoster_MissingFieldsDefault(t *testing.T) {
	// Missing role reads as participant, missing enrolled_at as earliest.
	roster := NormalizeRoster([]EnrollmentRecord{
		{Username: "A"},
		{Username: "A", Role: 0, EnrolledAt: "2025-01-01"},
	})

	assert.Equal(t, "2025-01-01", roster["A"].EnrolledAt)
	assert.Empty(t, roster.Staff())
}

func TestNormalizeRoster_DeterministicUnderPermutation(t *testing.T) {
	records := []EnrollmentRecord{
		{ID: 1, Username: "A", Role: 0, EnrolledAt: "2025-01-01"},
		{ID: 2, Username: "A", Role: 1, EnrolledAt: "2025-01-02"},
		{ID: 3, Username: "B", Role: 2, EnrolledAt: "2025-02-01"},
		{ID: 4, Username: "B", Role: 2, EnrolledAt: "2025-02-02"},
		{ID: 5, Username: "C", Role: 0, EnrolledAt: "2025-03-01"},
	}
	want := NormalizeRoster(records)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]EnrollmentRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, NormalizeRoster(shuffled))
	}
}

func TestNormalizeRoster_Idempotent(t *testing.T) {
	records := []EnrollmentRecord{
		{Username: "A", Role: 0, EnrolledAt: "2025-01-01"},
		{Username: "A", Role: 1, EnrolledAt: "2025-01-02"},
		{Username: "B", Role: 1, EnrolledAt: "2025-01-05"},
	}

	once := NormalizeRoster(records)
	again := NormalizeRoster(once.Records())
	assert.Equal(t, once, again)
}

func TestStaff_SubsetWithStaffRoles(t *testing.T) {
	records := []EnrollmentRecord{
		{Username: "Zoe", Role: 2, EnrolledAt: "2025-01-01"},
		{Username: "Amy", Role: 1, EnrolledAt: "2025-01-01"},
		{Username: "Bob", Role: 0, EnrolledAt: "2025-01-01"},
	}
	roster := NormalizeRoster(records)
	staff := roster.Staff()

	assert.Equal(t, []string{"Amy", "Zoe"}, staff)
	for _, username := range staff {
		assert.GreaterOrEqual(t, roster[username].Role, 1)
	}
}

func TestFacilitatorsParticipantsSplit(t *testing.T) {
	roster := NormalizeRoster([]EnrollmentRecord{
		{Username: "Amy", Role: 1},
		{Username: "Bob", Role: 0},
		{Username: "Cat", Role: 3},
		{Username: "Dan", Role: 0},
	})

	facilitators := roster.Facilitators()
	participants := roster.Participants()

	require.Len(t, facilitators, 2)
	require.Len(t, participants, 2)
	assert.Equal(t, "Amy", facilitators[0].Username)
	assert.Equal(t, "Cat", facilitators[1].Username)
	assert.Equal(t, "Bob", participants[0].Username)
	assert.Equal(t, "Dan", participants[1].Username)
	assert.Len(t, roster.Records(), 4)
}

func TestStaff_CaseSensitiveOrdinalSort(t *testing.T) {
	roster := NormalizeRoster([]EnrollmentRecord{
		{Username: "alice", Role: 1},
		{Username: "Bob", Role: 1},
	})

	// Uppercase sorts before lowercase in ordinal order.
	assert.Equal(t, []string{"Bob", "alice"}, roster.Staff())
}
