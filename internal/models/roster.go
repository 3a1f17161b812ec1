package models

import (
	"sort"
)

// EnrollmentRecord is one row of a course roster as upstream returns it.
// Nothing upstream enforces uniqueness per username: role changes and
// re-enrollments produce duplicate rows.
type EnrollmentRecord struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Role           int        `json:"role"`
	EnrolledAt     string     `json:"enrolled_at"`
	Admin          bool       `json:"admin"`
	ContentExpert  bool       `json:"content_expert"`
	ProgramManager bool       `json:"program_manager"`
	CharacterSumMs FlexString `json:"character_sum_ms"`
	CharacterSumUs FlexString `json:"character_sum_us"`
	References     FlexString `json:"references_count"`
	RecentEdits    FlexString `json:"recent_revisions"`
	TotalUploads   FlexString `json:"total_uploads"`
}

// IsStaff reports whether the record denotes a facilitator or instructor.
func (r *EnrollmentRecord) IsStaff() bool {
	return r.Role >= 1
}

// CanonicalRoster maps each username to its single chosen enrollment record.
type CanonicalRoster map[string]EnrollmentRecord

// NormalizeRoster collapses duplicate enrollment rows into one record per
// username. Selection order: higher role wins; on a role tie the later
// enrolled_at wins (ISO-8601 strings compare correctly as plain strings);
// on a full tie the first-seen record is kept. The result is therefore
// independent of input order except in the full-tie case.
//
// Records without a username are dropped silently: that is an upstream data
// integrity problem, not a fault of this service. A missing role reads as 0
// (participant) and a missing enrolled_at sorts as earliest, both via the
// zero value.
func NormalizeRoster(records []EnrollmentRecord) CanonicalRoster {
	roster := make(CanonicalRoster, len(records))
	for _, rec := range records {
		if rec.Username == "" {
			continue
		}
		existing, ok := roster[rec.Username]
		if !ok {
			roster[rec.Username] = rec
			continue
		}
		if rec.Role > existing.Role ||
			(rec.Role == existing.Role && rec.EnrolledAt > existing.EnrolledAt) {
			roster[rec.Username] = rec
		}
	}
	return roster
}

// Staff returns the usernames with role >= 1, sorted ascending. The roster
// is unique per username by construction, so no deduplication is needed.
func (cr CanonicalRoster) Staff() []string {
	staff := make([]string, 0, len(cr))
	for username, rec := range cr {
		if rec.IsStaff() {
			staff = append(staff, username)
		}
	}
	sort.Strings(staff)
	return staff
}

// Facilitators returns the staff records sorted by username.
func (cr CanonicalRoster) Facilitators() []EnrollmentRecord {
	return cr.selectRecords(func(r *EnrollmentRecord) bool { return r.IsStaff() })
}

// Participants returns the role-0 records sorted by username.
func (cr CanonicalRoster) Participants() []EnrollmentRecord {
	return cr.selectRecords(func(r *EnrollmentRecord) bool { return !r.IsStaff() })
}

// Records returns every canonical record sorted by username.
func (cr CanonicalRoster) Records() []EnrollmentRecord {
	return cr.selectRecords(func(*EnrollmentRecord) bool { return true })
}

func (cr CanonicalRoster) selectRecords(keep func(*EnrollmentRecord) bool) []EnrollmentRecord {
	out := make([]EnrollmentRecord, 0, len(cr))
	for _, rec := range cr {
		if keep(&rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}
