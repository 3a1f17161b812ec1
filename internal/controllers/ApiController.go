package controllers

import (
	"errors"
	"net/http"
	"odh/internal/outreach"
	"odh/internal/providers"
	"odh/internal/services"
	"strconv"

	json "github.com/goccy/go-json"
)

type ApiController struct {
	logger  providers.Logger
	service services.EnrichmentServiceInterface
}

func NewApiController(logger providers.Logger, service services.EnrichmentServiceInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
	}
}

func boolParam(r *http.Request, name string) bool {
	val, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && val
}

func (ac *ApiController) GetUserCourses(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	result, err := ac.service.GetUserCourses(r.Context(), username, boolParam(r, "enrich"))
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.writeJSON(w, result)
}

func (ac *ApiController) GetActiveStaff(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	result, err := ac.service.GetActiveStaff(r.Context(), username, boolParam(r, "use_event_dates"))
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.writeJSON(w, result)
}

func (ac *ApiController) GetUserStatus(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	result, err := ac.service.GetUserStatus(r.Context(), username)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.writeJSON(w, result)
}

func (ac *ApiController) GetCourseDetails(w http.ResponseWriter, r *http.Request) {
	school, slug := r.PathValue("school"), r.PathValue("slug")
	result, err := ac.service.GetCourseDetails(r.Context(), school, slug, boolParam(r, "enrich"))
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.writeJSON(w, result)
}

func (ac *ApiController) GetCourseUsers(w http.ResponseWriter, r *http.Request) {
	school, slug := r.PathValue("school"), r.PathValue("slug")
	result, err := ac.service.GetCourseUsers(r.Context(), school, slug, boolParam(r, "enrich"))
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.writeJSON(w, result)
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, result any) {
	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal Server Error"

	var oe *outreach.Error
	if errors.As(err, &oe) {
		switch oe.Kind {
		case outreach.KindNotFound:
			status, message = http.StatusNotFound, "Not Found"
		case outreach.KindAmbiguousID:
			status, message = http.StatusBadRequest, "Bad Request"
		default:
			status, message = http.StatusBadGateway, "Upstream Error"
		}
	}

	ac.logger.Warnf(providers.GetLogTypeByRequestType(r.Method), "%s %s -> %d: %s", r.Method, r.URL.Path, status, err)
	http.Error(w, message, status)
}
