package models

// CourseEnrollment is one entry of a user's course list from user_stats.
// Only the slug is identity; everything else is best-effort.
type CourseEnrollment struct {
	CourseID     int64      `json:"course_id"`
	CourseTitle  string     `json:"course_title"`
	CourseSchool string     `json:"course_school"`
	CourseTerm   string     `json:"course_term"`
	UserCount    FlexString `json:"user_count"`
	UserRole     string     `json:"user_role"`
	CourseSlug   string     `json:"course_slug"`
}

// UserStats is the slice of the upstream user_stats payload this service
// cares about. The aggregate contribution numbers upstream bundles in are
// ignored except max_project.
type UserStats struct {
	Username       string             `json:"username"`
	CoursesDetails []CourseEnrollment `json:"courses_details"`
	MaxProject     string             `json:"max_project"`
}

// CourseInfo is the partial parse of upstream course metadata. Empty strings
// mean the field was absent; the two window pairs feed IsActive, which turns
// absence into Unknown rather than false.
type CourseInfo struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	School        string     `json:"school"`
	Slug          string     `json:"slug"`
	Start         string     `json:"start"`
	End           string     `json:"end"`
	TimelineStart string     `json:"timeline_start"`
	TimelineEnd   string     `json:"timeline_end"`
	Published     bool       `json:"published"`
	Private       bool       `json:"private"`
	Ended         bool       `json:"ended"`
	Closed        bool       `json:"closed"`
	CourseType    string     `json:"type"`
	Term          string     `json:"term"`
	StudentCount  FlexString `json:"student_count"`
}

// TrackingWindow returns the broad activity-tracking bounds.
func (c *CourseInfo) TrackingWindow() (start, end string) {
	return c.Start, c.End
}

// EventWindow returns the narrow event bounds.
func (c *CourseInfo) EventWindow() (start, end string) {
	return c.TimelineStart, c.TimelineEnd
}
