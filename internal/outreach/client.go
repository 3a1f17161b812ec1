package outreach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"odh/internal/models"
	"odh/internal/providers"
	"odh/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

const (
	ResourceUserStats   = "user_stats"
	ResourceCourse      = "course"
	ResourceCourseUsers = "course_users"
)

// Responses larger than this are not course data.
const maxResponseBodySize = 8 << 20

// ClientInterface talks to the Outreach Dashboard. Every call carries the
// configured timeout; the dashboard is third-party and can hang. No retry
// here: the enrichment layer decides how a failure degrades.
type ClientInterface interface {
	FetchUserStats(ctx context.Context, username string) (*models.UserStats, error)
	FetchCourseDetails(ctx context.Context, school, slug string) (*models.CourseInfo, error)
	FetchCourseRoster(ctx context.Context, school, slug string) ([]models.EnrollmentRecord, error)
}

type Client struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) ClientInterface {
	return &Client{
		baseURL: conf.Upstream.BaseURL,
		timeout: conf.Upstream.Timeout,
		client:  &http.Client{Timeout: conf.Upstream.Timeout},
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Client) FetchUserStats(ctx context.Context, username string) (*models.UserStats, error) {
	path := "/user_stats.json?username=" + url.QueryEscape(username)

	var stats models.UserStats
	if err := c.get(ctx, ResourceUserStats, username, path, &stats); err != nil {
		return nil, err
	}
	if stats.Username == "" {
		stats.Username = username
	}
	if stats.CoursesDetails == nil {
		stats.CoursesDetails = []models.CourseEnrollment{}
	}
	return &stats, nil
}

func (c *Client) FetchCourseDetails(ctx context.Context, school, slug string) (*models.CourseInfo, error) {
	ref := school + "/" + slug
	path := "/courses/" + url.PathEscape(school) + "/" + url.PathEscape(slug) + "/course.json"

	var payload struct {
		Course *models.CourseInfo `json:"course"`
	}
	if err := c.get(ctx, ResourceCourse, ref, path, &payload); err != nil {
		return nil, err
	}
	// A details payload without a course object tells us nothing.
	if payload.Course == nil {
		return nil, &Error{Kind: KindMalformed, Resource: ResourceCourse, Ref: ref,
			Err: errors.New("payload has no course object")}
	}
	if payload.Course.School == "" {
		payload.Course.School = school
	}
	if payload.Course.Slug == "" {
		payload.Course.Slug = ref
	}
	return payload.Course, nil
}

func (c *Client) FetchCourseRoster(ctx context.Context, school, slug string) ([]models.EnrollmentRecord, error) {
	ref := school + "/" + slug
	path := "/courses/" + url.PathEscape(school) + "/" + url.PathEscape(slug) + "/users.json"

	var payload struct {
		Course *struct {
			Users []models.EnrollmentRecord `json:"users"`
		} `json:"course"`
	}
	if err := c.get(ctx, ResourceCourseUsers, ref, path, &payload); err != nil {
		return nil, err
	}
	if payload.Course == nil {
		return nil, &Error{Kind: KindMalformed, Resource: ResourceCourseUsers, Ref: ref,
			Err: errors.New("payload has no course object")}
	}
	// An absent users list is an empty roster, not an error.
	if payload.Course.Users == nil {
		return []models.EnrollmentRecord{}, nil
	}
	return payload.Course.Users, nil
}

func (c *Client) get(ctx context.Context, resource, ref, path string, out any) error {
	start := time.Now()
	err := c.doGet(ctx, resource, ref, path, out)
	c.metrics.ObserveUpstreamDuration(resource, time.Since(start))

	outcome := "ok"
	if err != nil {
		var oe *Error
		if errors.As(err, &oe) {
			outcome = oe.Kind.String()
		} else {
			outcome = KindUnavailable.String()
		}
		c.logger.Warnf(providers.TypeUpstream, "GET %s failed after %s: %s", path, time.Since(start), err)
	} else {
		c.logger.Debugf(providers.TypeUpstream, "GET %s done in %s", path, time.Since(start))
	}
	c.metrics.IncUpstreamRequests(resource, outcome)
	return err
}

func (c *Client) doGet(ctx context.Context, resource, ref, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &Error{Kind: KindUnavailable, Resource: resource, Ref: ref, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Kind: KindUnavailable, Resource: resource, Ref: ref, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return &Error{Kind: KindNotFound, Resource: resource, Ref: ref}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &Error{Kind: KindUnavailable, Resource: resource, Ref: ref,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return &Error{Kind: KindUnavailable, Resource: resource, Ref: ref, Err: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindMalformed, Resource: resource, Ref: ref, Err: err}
	}
	return nil
}
