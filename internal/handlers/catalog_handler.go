package handlers

import (
	"net/http"
	"strings"

	"course-catalog/internal/catalog"
	"course-catalog/internal/domain"
	"course-catalog/internal/embed"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NoMatchMessage is shown when a listing comes back empty.
const NoMatchMessage = "No courses match your search or filter."

// CatalogReader is the read side of the course catalog.
type CatalogReader interface {
	// Filter returns the courses matching f in catalog order.
	Filter(f catalog.Filter) []domain.Course
	// ByID returns the first course with the given id.
	ByID(id string) (domain.Course, bool)
	Categories() []string
	Levels() []string
	Len() int
	Status() catalog.LoadStatus
}

// CompletionTracker records which courses the user has finished.
type CompletionTracker interface {
	IsCompleted(id string) bool
	// MarkCompleted persists id. added is false when it was already recorded.
	MarkCompleted(id string) (added bool, err error)
	PercentComplete(catalogSize int) int
	IDs() []string
}

// CatalogHandler handles HTTP requests for the course catalog
type CatalogHandler struct {
	BaseHandler
	catalog  CatalogReader
	progress CompletionTracker
	embed    embed.Strategy
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(store CatalogReader, tracker CompletionTracker, strategy embed.Strategy, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: BaseHandler{logger: logger},
		catalog:     store,
		progress:    tracker,
		embed:       strategy,
	}
}

// RegisterRoutes registers all catalog handler routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.ListCourses)
			r.Get("/{id}", h.GetCourse)
			r.Post("/{id}/complete", h.CompleteCourse)
		})
		r.Get("/categories", h.ListCategories)
		r.Get("/levels", h.ListLevels)
		r.Get("/progress", h.GetProgress)
		r.Get("/status", h.GetStatus)
	})
}

// CourseCard is the listing view of a course.
type CourseCard struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ShortDescription string `json:"short"`
	Category         string `json:"category"`
	Level            string `json:"level"`
	Duration         string `json:"duration"`
	Price            string `json:"price"`
	Completed        bool   `json:"completed"`
}

// CourseDetail is the full view of a course. EmbedURL is the URL to put in
// the player iframe; empty means there is no video.
type CourseDetail struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	ShortDescription string            `json:"short"`
	FullDescription  string            `json:"fulldesc"`
	Category         string            `json:"category"`
	Level            string            `json:"level"`
	Duration         string            `json:"duration"`
	Price            string            `json:"price"`
	VideoURL         string            `json:"video_url"`
	EmbedURL         string            `json:"embed_url"`
	Resources        []domain.Resource `json:"resources"`
	Completed        bool              `json:"completed"`
}

// CourseList is the response of GET /api/v1/courses.
type CourseList struct {
	Courses []CourseCard `json:"courses"`
	Count   int          `json:"count"`
	Message string       `json:"message,omitempty"`
}

// CompleteResponse is the response of POST /api/v1/courses/{id}/complete.
type CompleteResponse struct {
	Completed        bool `json:"completed"`
	AlreadyCompleted bool `json:"already_completed"`
	Percent          int  `json:"percent"`
}

// ProgressResponse is the response of GET /api/v1/progress.
type ProgressResponse struct {
	Percent        int          `json:"percent"`
	CompletedCount int          `json:"completed_count"`
	Total          int          `json:"total"`
	Completed      []CourseCard `json:"completed"`
}

func (h *CatalogHandler) card(c domain.Course) CourseCard {
	return CourseCard{
		ID:               c.ID,
		Title:            c.Title,
		ShortDescription: c.ShortDescription,
		Category:         c.Category,
		Level:            c.Level,
		Duration:         c.Duration,
		Price:            c.Price,
		Completed:        h.progress.IsCompleted(c.ID),
	}
}

// ListCourses handles GET /api/v1/courses?q=&category=&level=
func (h *CatalogHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	courses := h.catalog.Filter(catalog.Filter{
		Search:   q.Get("q"),
		Category: strings.TrimSpace(q.Get("category")),
		Level:    strings.TrimSpace(q.Get("level")),
	})

	resp := CourseList{Courses: make([]CourseCard, 0, len(courses)), Count: len(courses)}
	for _, c := range courses {
		resp.Courses = append(resp.Courses, h.card(c))
	}

	switch status := h.catalog.Status(); {
	case status.State == catalog.StateFailed:
		resp.Message = status.Message
	case len(courses) == 0:
		resp.Message = NoMatchMessage
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GetCourse handles GET /api/v1/courses/{id}
func (h *CatalogHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	c, ok := h.catalog.ByID(chi.URLParam(r, "id"))
	if !ok {
		h.respondError(w, http.StatusNotFound, "course not found")
		return
	}

	h.respondJSON(w, http.StatusOK, CourseDetail{
		ID:               c.ID,
		Title:            c.Title,
		ShortDescription: c.ShortDescription,
		FullDescription:  c.FullDescription,
		Category:         c.Category,
		Level:            c.Level,
		Duration:         c.Duration,
		Price:            c.Price,
		VideoURL:         c.VideoURL,
		EmbedURL:         h.embed.RenderURL(c),
		Resources:        c.Resources,
		Completed:        h.progress.IsCompleted(c.ID),
	})
}

// CompleteCourse handles POST /api/v1/courses/{id}/complete
func (h *CatalogHandler) CompleteCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.catalog.ByID(id); !ok {
		h.respondError(w, http.StatusNotFound, "course not found")
		return
	}

	added, err := h.progress.MarkCompleted(id)
	if err != nil {
		h.logger.Error("failed to persist completion", zap.String("course_id", id), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to save progress")
		return
	}

	h.respondJSON(w, http.StatusOK, CompleteResponse{
		Completed:        true,
		AlreadyCompleted: !added,
		Percent:          h.progress.PercentComplete(h.catalog.Len()),
	})
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.catalog.Categories())
}

// ListLevels handles GET /api/v1/levels
func (h *CatalogHandler) ListLevels(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.catalog.Levels())
}

// GetProgress handles GET /api/v1/progress
func (h *CatalogHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	total := h.catalog.Len()
	resp := ProgressResponse{
		Percent:   h.progress.PercentComplete(total),
		Total:     total,
		Completed: []CourseCard{},
	}
	// ids from other catalogs stay in the file but are not listed
	for _, id := range h.progress.IDs() {
		if c, ok := h.catalog.ByID(id); ok {
			resp.Completed = append(resp.Completed, h.card(c))
		}
	}
	resp.CompletedCount = len(resp.Completed)

	h.respondJSON(w, http.StatusOK, resp)
}

// GetStatus handles GET /api/v1/status
func (h *CatalogHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.catalog.Status())
}

// Health handles GET /health
func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
