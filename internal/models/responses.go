package models

// EnrichedCourse augments a course enrollment with the two activity flags
// and the staff list. Computed fresh on every request and never cached:
// the flags depend on the wall clock.
type EnrichedCourse struct {
	CourseEnrollment
	Start          string   `json:"start,omitempty"`
	End            string   `json:"end,omitempty"`
	TimelineStart  string   `json:"timeline_start,omitempty"`
	TimelineEnd    string   `json:"timeline_end,omitempty"`
	ActiveEvent    TriState `json:"active_event"`
	ActiveTracking TriState `json:"active_tracking"`
	// Staff is nil when the roster could not be fetched (unknown), and an
	// empty non-nil slice when the course genuinely has no staff.
	Staff []string `json:"staff"`
}

// UserCoursesResult is the response shape of the user course listing.
type UserCoursesResult struct {
	Username     string           `json:"username"`
	Courses      []EnrichedCourse `json:"courses"`
	IsInstructor bool             `json:"is_instructor"`
	IsStudent    bool             `json:"is_student"`
	MaxProject   string           `json:"max_project,omitempty"`
}

// ActiveCourseStaff is the per-course slice of a staff aggregate.
type ActiveCourseStaff struct {
	CourseSlug  string   `json:"course_slug"`
	CourseTitle string   `json:"course_title"`
	Staff       []string `json:"staff"`
}

// StaffAggregate is the cross-course staff union for a user's active
// courses. Courses whose activity is Unknown are excluded: guessing a
// course active would surface the wrong facilitators.
type StaffAggregate struct {
	Username string              `json:"username"`
	AllStaff []string            `json:"all_staff"`
	Courses  []ActiveCourseStaff `json:"courses"`
}

// UserStatusResult is the lightweight dashboard-presence check.
type UserStatusResult struct {
	Username          string `json:"username"`
	HasAnyCourses     bool   `json:"has_any_courses"`
	HasActiveEvent    bool   `json:"has_active_event"`
	HasActiveTracking bool   `json:"has_active_tracking"`
	ActiveEventCount  int    `json:"active_event_count"`
	TrackedCount      int    `json:"tracked_count"`
	TotalCourses      int    `json:"total_courses"`
}

// RosterResult is the normalized roster split by role.
type RosterResult struct {
	Slug           string             `json:"slug"`
	Facilitators   []EnrollmentRecord `json:"facilitators"`
	Participants   []EnrollmentRecord `json:"participants"`
	AllUsers       []EnrollmentRecord `json:"all_users"`
	ActiveEvent    TriState           `json:"active_event"`
	ActiveTracking TriState           `json:"active_tracking"`
}

// CourseDetailsResult is the course metadata response, optionally enriched.
type CourseDetailsResult struct {
	CourseInfo
	ActiveEvent    TriState `json:"active_event"`
	ActiveTracking TriState `json:"active_tracking"`
	Staff          []string `json:"staff"`
}
