package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"odh/internal/models"
	"odh/internal/outreach"
	"odh/internal/testutil"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEnrichmentService struct {
	userCoursesFn   func(username string, enrich bool) (*models.UserCoursesResult, error)
	activeStaffFn   func(username string, useEventDates bool) (*models.StaffAggregate, error)
	userStatusFn    func(username string) (*models.UserStatusResult, error)
	courseUsersFn   func(school, slug string, enrich bool) (*models.RosterResult, error)
	courseDetailsFn func(school, slug string, enrich bool) (*models.CourseDetailsResult, error)
}

func (m *mockEnrichmentService) GetUserCourses(_ context.Context, username string, enrich bool) (*models.UserCoursesResult, error) {
	return m.userCoursesFn(username, enrich)
}

func (m *mockEnrichmentService) GetActiveStaff(_ context.Context, username string, useEventDates bool) (*models.StaffAggregate, error) {
	return m.activeStaffFn(username, useEventDates)
}

func (m *mockEnrichmentService) GetUserStatus(_ context.Context, username string) (*models.UserStatusResult, error) {
	return m.userStatusFn(username)
}

func (m *mockEnrichmentService) GetCourseUsers(_ context.Context, school, slug string, enrich bool) (*models.RosterResult, error) {
	return m.courseUsersFn(school, slug, enrich)
}

func (m *mockEnrichmentService) GetCourseDetails(_ context.Context, school, slug string, enrich bool) (*models.CourseDetailsResult, error) {
	return m.courseDetailsFn(school, slug, enrich)
}

func userRequest(target, username string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.SetPathValue("username", username)
	return req
}

func courseRequest(target, school, slug string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.SetPathValue("school", school)
	req.SetPathValue("slug", slug)
	return req
}

func TestGetUserCourses(t *testing.T) {
	service := &mockEnrichmentService{
		userCoursesFn: func(username string, enrich bool) (*models.UserCoursesResult, error) {
			assert.Equal(t, "Alice", username)
			assert.True(t, enrich)
			return &models.UserCoursesResult{
				Username:  username,
				IsStudent: true,
				Courses: []models.EnrichedCourse{
					{CourseEnrollment: models.CourseEnrollment{CourseSlug: "School/A"}, ActiveTracking: models.Active},
				},
			}, nil
		},
	}
	controller := NewApiController(&testutil.MockLogger{}, service)

	w := httptest.NewRecorder()
	controller.GetUserCourses(w, userRequest("/users/Alice?enrich=true", "Alice"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got models.UserCoursesResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Alice", got.Username)
	require.Len(t, got.Courses, 1)
	assert.Equal(t, models.Active, got.Courses[0].ActiveTracking)
}

func TestGetUserCourses_EnrichDefaultsOff(t *testing.T) {
	service := &mockEnrichmentService{
		userCoursesFn: func(username string, enrich bool) (*models.UserCoursesResult, error) {
			assert.False(t, enrich)
			return &models.UserCoursesResult{Username: username}, nil
		},
	}
	controller := NewApiController(&testutil.MockLogger{}, service)

	w := httptest.NewRecorder()
	controller.GetUserCourses(w, userRequest("/users/Alice", "Alice"))
	assert.Equal(t, http.StatusOK, w.Code)

	// Junk values parse as off too.
	w = httptest.NewRecorder()
	controller.GetUserCourses(w, userRequest("/users/Alice?enrich=maybe", "Alice"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetUserCourses_NotFound(t *testing.T) {
	service := &mockEnrichmentService{
		userCoursesFn: func(username string, enrich bool) (*models.UserCoursesResult, error) {
			return nil, &outreach.Error{Kind: outreach.KindNotFound, Resource: outreach.ResourceUserStats, Ref: username}
		},
	}
	logger := &testutil.MockLogger{}
	controller := NewApiController(logger, service)

	w := httptest.NewRecorder()
	controller.GetUserCourses(w, userRequest("/users/Nobody", "Nobody"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found\n", w.Body.String())
	require.Len(t, logger.Logs, 1)
	assert.Equal(t, "warn", logger.Logs[0].Level)
}

func TestGetUserCourses_UpstreamDown(t *testing.T) {
	service := &mockEnrichmentService{
		userCoursesFn: func(username string, enrich bool) (*models.UserCoursesResult, error) {
			return nil, &outreach.Error{Kind: outreach.KindUnavailable, Resource: outreach.ResourceUserStats, Ref: username}
		},
	}
	controller := NewApiController(&testutil.MockLogger{}, service)

	w := httptest.NewRecorder()
	controller.GetUserCourses(w, userRequest("/users/Alice", "Alice"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Upstream Error\n", w.Body.String())
}

func TestGetUserCourses_UnexpectedError(t *testing.T) {
	service := &mockEnrichmentService{
		userCoursesFn: func(username string, enrich bool) (*models.UserCoursesResult, error) {
			return nil, errors.New("boom")
		},
	}
	controller := NewApiController(&testutil.MockLogger{}, service)

	w := httptest.NewRecorder()
	controller.GetUserCourses(w, userRequest("/users/Alice", "Alice"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetActiveStaff(t *testing.T) {
	service := &mockEnrichmentService{
		activeStaffFn: func(username string, useEventDates bool) (*models.StaffAggregate, error) {
			assert.True(t, useEventDates)
			return &models.StaffAggregate{
				Username: username,
				AllStaff: []string{"Facilitator"},
				Courses: []models.ActiveCourseStaff{
					{CourseSlug: "School/A", Staff: []string{"Facilitator"}},
				},
			}, nil
		},
	}
	controller := NewApiController(&testutil.MockLogger{}, service)

	w := httptest.NewRecorder()
	controller.GetActiveStaff(w, userRequest("/users/Alice/active-staff?use_event_dates=1", "Alice"))

	require.Equal(t, http.StatusOK, w.Code)
	var got models.StaffAggregate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"Facilitator"}, got.AllStaff)
}

func TestGetUserStatus(t *testing.T) {
	service := &mockEnrichmentService{
		userStatusFn: func(username string) (*models.UserStatusResult, error) {
			return &models.UserStatusResult{Username: username, HasAnyCourses: true, TotalCourses: 3}, nil
		},
	}
	controller := NewApiController(&testutil.MockLogger{}, service)

	w := httptest.NewRecorder()
	controller.GetUserStatus(w, userRequest("/users/Alice/status", "Alice"))

	require.Equal(t, http.StatusOK, w.Code)
	var got models.UserStatusResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.HasAnyCourses)
	assert.Equal(t, 3, got.TotalCourses)
}

func TestGetCourseDetails(t *testing.T) {
	service := &mockEnrichmentService{
		courseDetailsFn: func(school, slug string, enrich bool) (*models.CourseDetailsResult, error) {
			assert.Equal(t, "School", school)
			assert.Equal(t, "Editing_101", slug)
			return &models.CourseDetailsResult{
				CourseInfo: models.CourseInfo{Slug: school + "/" + slug, Title: "Editing 101"},
			}, nil
		},
	}
	controller := NewApiController(&testutil.MockLogger{}, service)

	w := httptest.NewRecorder()
	controller.GetCourseDetails(w, courseRequest("/courses/School/Editing_101", "School", "Editing_101"))

	require.Equal(t, http.StatusOK, w.Code)
	var got models.CourseDetailsResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Editing 101", got.Title)
}

func TestGetCourseUsers(t *testing.T) {
	service := &mockEnrichmentService{
		courseUsersFn: func(school, slug string, enrich bool) (*models.RosterResult, error) {
			return &models.RosterResult{
				Slug:         school + "/" + slug,
				Facilitators: []models.EnrollmentRecord{{Username: "Amy", Role: 1}},
				Participants: []models.EnrollmentRecord{{Username: "Bob"}},
			}, nil
		},
	}
	controller := NewApiController(&testutil.MockLogger{}, service)

	w := httptest.NewRecorder()
	controller.GetCourseUsers(w, courseRequest("/courses/School/Editing_101/users", "School", "Editing_101"))

	require.Equal(t, http.StatusOK, w.Code)
	var got models.RosterResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Facilitators, 1)
	assert.Equal(t, "Amy", got.Facilitators[0].Username)
}

func TestGetCourseDetails_AmbiguousID(t *testing.T) {
	service := &mockEnrichmentService{
		courseDetailsFn: func(school, slug string, enrich bool) (*models.CourseDetailsResult, error) {
			return nil, &outreach.Error{Kind: outreach.KindAmbiguousID, Resource: outreach.ResourceCourse, Ref: school + "/" + slug}
		},
	}
	controller := NewApiController(&testutil.MockLogger{}, service)

	w := httptest.NewRecorder()
	controller.GetCourseDetails(w, courseRequest("/courses/bad/id", "bad", "id"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCourseDetails_MalformedUpstream(t *testing.T) {
	service := &mockEnrichmentService{
		courseDetailsFn: func(school, slug string, enrich bool) (*models.CourseDetailsResult, error) {
			return nil, &outreach.Error{Kind: outreach.KindMalformed, Resource: outreach.ResourceCourse, Ref: school + "/" + slug}
		},
	}
	controller := NewApiController(&testutil.MockLogger{}, service)

	w := httptest.NewRecorder()
	controller.GetCourseDetails(w, courseRequest("/courses/School/Slug", "School", "Slug"))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
