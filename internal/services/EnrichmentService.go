package services

import (
	"context"
	"errors"
	"odh/internal/models"
	"odh/internal/outreach"
	"odh/internal/providers"
	"odh/internal/structures"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// EnrichmentServiceInterface joins cached user, course and roster data into
// the views the gadget consumes. Activity flags are recomputed against the
// wall clock on every call and never cached.
type EnrichmentServiceInterface interface {
	GetUserCourses(ctx context.Context, username string, enrich bool) (*models.UserCoursesResult, error)
	GetActiveStaff(ctx context.Context, username string, useEventDates bool) (*models.StaffAggregate, error)
	GetUserStatus(ctx context.Context, username string) (*models.UserStatusResult, error)
	GetCourseUsers(ctx context.Context, school, slug string, enrich bool) (*models.RosterResult, error)
	GetCourseDetails(ctx context.Context, school, slug string, enrich bool) (*models.CourseDetailsResult, error)
}

type EnrichmentService struct {
	conf   *structures.Config
	client outreach.ClientInterface
	cache  CacheServiceInterface
	logger providers.Logger
	now    func() time.Time
}

func NewEnrichmentService(conf *structures.Config, client outreach.ClientInterface, cache CacheServiceInterface, logger providers.Logger) EnrichmentServiceInterface {
	return &EnrichmentService{
		conf:   conf,
		client: client,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// SplitSlug separates a course slug into its school and title components at
// the first separator. Slugs carrying the separator inside a component are
// ambiguous upstream data; the first cut is the only defensible reading.
func SplitSlug(slug string) (school, title string, err error) {
	school, title, found := strings.Cut(slug, "/")
	if !found || school == "" || title == "" {
		return "", "", &outreach.Error{
			Kind:     outreach.KindAmbiguousID,
			Resource: outreach.ResourceCourse,
			Ref:      slug,
			Err:      errors.New("slug does not split into school and title"),
		}
	}
	return school, title, nil
}

func (es *EnrichmentService) GetUserCourses(ctx context.Context, username string, enrich bool) (*models.UserCoursesResult, error) {
	stats, err := es.userStats(ctx, username)
	if err != nil {
		return nil, err
	}

	var courses []models.EnrichedCourse
	if enrich {
		courses = es.enrichCourses(ctx, stats.CoursesDetails)
	} else {
		courses = make([]models.EnrichedCourse, len(stats.CoursesDetails))
		for i, enr := range stats.CoursesDetails {
			courses[i] = models.EnrichedCourse{CourseEnrollment: enr}
		}
	}

	isInstructor, isStudent := false, false
	for _, c := range courses {
		if c.UserRole == "student" {
			isStudent = true
		} else if c.UserRole != "" {
			isInstructor = true
		}
	}

	return &models.UserCoursesResult{
		Username:     username,
		Courses:      courses,
		IsInstructor: isInstructor,
		IsStudent:    isStudent,
		MaxProject:   stats.MaxProject,
	}, nil
}

func (es *EnrichmentService) GetActiveStaff(ctx context.Context, username string, useEventDates bool) (*models.StaffAggregate, error) {
	stats, err := es.userStats(ctx, username)
	if err != nil {
		return nil, err
	}

	enriched := es.enrichCourses(ctx, stats.CoursesDetails)

	seen := make(map[string]struct{})
	allStaff := make([]string, 0)
	active := make([]models.ActiveCourseStaff, 0)

	for _, course := range enriched {
		flag := course.ActiveTracking
		if useEventDates {
			flag = course.ActiveEvent
		}
		// Unknown is excluded on purpose: guessing a course active would
		// surface the wrong facilitators.
		if flag != models.Active || len(course.Staff) == 0 {
			continue
		}
		active = append(active, models.ActiveCourseStaff{
			CourseSlug:  course.CourseSlug,
			CourseTitle: course.CourseTitle,
			Staff:       course.Staff,
		})
		for _, staff := range course.Staff {
			if _, ok := seen[staff]; !ok {
				seen[staff] = struct{}{}
				allStaff = append(allStaff, staff)
			}
		}
	}
	sort.Strings(allStaff)

	return &models.StaffAggregate{
		Username: username,
		AllStaff: allStaff,
		Courses:  active,
	}, nil
}

func (es *EnrichmentService) GetUserStatus(ctx context.Context, username string) (*models.UserStatusResult, error) {
	status := &models.UserStatusResult{Username: username}

	stats, err := es.userStats(ctx, username)
	if err != nil {
		// An absent user has an empty dashboard presence, not an error.
		if outreach.IsKind(err, outreach.KindNotFound) {
			return status, nil
		}
		return nil, err
	}

	enriched := es.enrichCourses(ctx, stats.CoursesDetails)
	status.TotalCourses = len(enriched)
	for _, course := range enriched {
		if course.ActiveEvent == models.Active {
			status.ActiveEventCount++
		}
		if course.ActiveTracking == models.Active {
			status.TrackedCount++
		}
	}
	status.HasAnyCourses = status.TotalCourses > 0
	status.HasActiveEvent = status.ActiveEventCount > 0
	status.HasActiveTracking = status.TrackedCount > 0
	return status, nil
}

func (es *EnrichmentService) GetCourseUsers(ctx context.Context, school, slug string, enrich bool) (*models.RosterResult, error) {
	records, err := es.roster(ctx, school, slug)
	if err != nil {
		return nil, err
	}

	roster := models.NormalizeRoster(records)
	result := &models.RosterResult{
		Slug:         school + "/" + slug,
		Facilitators: roster.Facilitators(),
		Participants: roster.Participants(),
		AllUsers:     roster.Records(),
	}

	if enrich {
		if info, err := es.courseInfo(ctx, school, slug); err != nil {
			es.logger.Warnf(providers.TypeApp, "Course %s/%s: activity unknown: %s", school, slug, err)
		} else {
			now := es.now()
			result.ActiveTracking = models.IsActive(now, info.Start, info.End)
			result.ActiveEvent = models.IsActive(now, info.TimelineStart, info.TimelineEnd)
		}
	}
	return result, nil
}

func (es *EnrichmentService) GetCourseDetails(ctx context.Context, school, slug string, enrich bool) (*models.CourseDetailsResult, error) {
	info, err := es.courseInfo(ctx, school, slug)
	if err != nil {
		return nil, err
	}

	result := &models.CourseDetailsResult{CourseInfo: *info}
	if enrich {
		now := es.now()
		result.ActiveTracking = models.IsActive(now, info.Start, info.End)
		result.ActiveEvent = models.IsActive(now, info.TimelineStart, info.TimelineEnd)

		if records, err := es.roster(ctx, school, slug); err != nil {
			es.logger.Warnf(providers.TypeApp, "Course %s/%s: staff unknown: %s", school, slug, err)
		} else {
			result.Staff = models.NormalizeRoster(records).Staff()
		}
	}
	return result, nil
}

// enrichCourses fans out over the enrolled courses; they are independent,
// so their fetches run concurrently. Results land at their original index,
// preserving enrollment order.
func (es *EnrichmentService) enrichCourses(ctx context.Context, enrollments []models.CourseEnrollment) []models.EnrichedCourse {
	enriched := make([]models.EnrichedCourse, len(enrollments))

	var wg sync.WaitGroup
	for i, enrollment := range enrollments {
		wg.Add(1)
		go func(i int, enrollment models.CourseEnrollment) {
			defer wg.Done()
			enriched[i] = es.enrichCourse(ctx, enrollment)
		}(i, enrollment)
	}
	wg.Wait()

	return enriched
}

// enrichCourse never fails: a course whose details or roster cannot be
// fetched keeps Unknown flags and a nil staff list, and the request as a
// whole goes on.
func (es *EnrichmentService) enrichCourse(ctx context.Context, enrollment models.CourseEnrollment) models.EnrichedCourse {
	out := models.EnrichedCourse{CourseEnrollment: enrollment}

	school, title, err := SplitSlug(enrollment.CourseSlug)
	if err != nil {
		es.logger.Warnf(providers.TypeApp, "Skipping enrichment of %q: %s", enrollment.CourseSlug, err)
		return out
	}

	if info, err := es.courseInfo(ctx, school, title); err != nil {
		es.logger.Warnf(providers.TypeApp, "Course %s: activity unknown: %s", enrollment.CourseSlug, err)
	} else {
		now := es.now()
		out.Start, out.End = info.TrackingWindow()
		out.TimelineStart, out.TimelineEnd = info.EventWindow()
		out.ActiveTracking = models.IsActive(now, info.Start, info.End)
		out.ActiveEvent = models.IsActive(now, info.TimelineStart, info.TimelineEnd)
	}

	if records, err := es.roster(ctx, school, title); err != nil {
		es.logger.Warnf(providers.TypeApp, "Course %s: staff unknown: %s", enrollment.CourseSlug, err)
	} else {
		out.Staff = models.NormalizeRoster(records).Staff()
	}
	return out
}

func (es *EnrichmentService) userStats(ctx context.Context, username string) (*models.UserStats, error) {
	data, err := es.cache.GetOrRefresh(ctx, UserKey(username), es.conf.TTL.User, func(ctx context.Context) ([]byte, error) {
		stats, err := es.client.FetchUserStats(ctx, username)
		if err != nil {
			return nil, err
		}
		return json.Marshal(stats)
	})
	if err != nil {
		return nil, err
	}
	var stats models.UserStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (es *EnrichmentService) courseInfo(ctx context.Context, school, slug string) (*models.CourseInfo, error) {
	data, err := es.cache.GetOrRefresh(ctx, CourseKey(school, slug), es.conf.TTL.Course, func(ctx context.Context) ([]byte, error) {
		info, err := es.client.FetchCourseDetails(ctx, school, slug)
		if err != nil {
			return nil, err
		}
		return json.Marshal(info)
	})
	if err != nil {
		return nil, err
	}
	var info models.CourseInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (es *EnrichmentService) roster(ctx context.Context, school, slug string) ([]models.EnrollmentRecord, error) {
	data, err := es.cache.GetOrRefresh(ctx, CourseUsersKey(school, slug), es.conf.TTL.CourseUsers, func(ctx context.Context) ([]byte, error) {
		records, err := es.client.FetchCourseRoster(ctx, school, slug)
		if err != nil {
			return nil, err
		}
		return json.Marshal(records)
	})
	if err != nil {
		return nil, err
	}
	var records []models.EnrollmentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
