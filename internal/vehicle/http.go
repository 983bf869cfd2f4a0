package vehicle

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vinledger/vinledger/internal/common/logger"
)

// HTTPServer exposes the vehicle resource over HTTP/JSON.
type HTTPServer struct {
	repo *Repo
	log  logger.Logger
}

func NewHTTPServer(db *gorm.DB, log logger.Logger) *HTTPServer {
	return &HTTPServer{repo: NewRepo(db), log: log}
}

// RegisterRoutes mounts the vehicle routes. PUT aliases PATCH: both apply
// partial-update semantics.
func (s *HTTPServer) RegisterRoutes(r gin.IRouter) {
	r.GET("/vehicles", s.List)
	r.POST("/vehicles", s.Create)
	r.GET("/vehicles/:id", s.Get)
	r.PATCH("/vehicles/:id", s.Update)
	r.PUT("/vehicles/:id", s.Update)
	r.DELETE("/vehicles/:id", s.Delete)
}

// createVehicleRequest is the decoded POST body. Only vin is required.
type createVehicleRequest struct {
	VIN   string  `json:"vin"`
	Make  *string `json:"make"`
	Model *string `json:"model"`
	Year  *int    `json:"year"`
	Notes *string `json:"notes"`
}

// updateVehicleRequest is the decoded PATCH/PUT body. Every field is a
// pointer: nil means "leave unchanged".
type updateVehicleRequest struct {
	VIN   *string `json:"vin"`
	Make  *string `json:"make"`
	Model *string `json:"model"`
	Year  *int    `json:"year"`
	Notes *string `json:"notes"`
}

func validateVIN(vin string) (string, bool) {
	vin = strings.TrimSpace(vin)
	if vin == "" || len(vin) > MaxVINLength {
		return "", false
	}
	return vin, true
}

// parseIDParam rejects syntactically invalid ids before the store is touched;
// 404 is reserved for well-formed ids that do not exist.
func parseIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicle id is not a valid uuid"})
		return "", false
	}
	return id, true
}

func (s *HTTPServer) List(c *gin.Context) {
	filter := ListFilter{
		VIN:  c.Query("vin"),
		Make: c.Query("make"),
	}
	vehicles, err := s.repo.FindAll(c.Request.Context(), filter)
	if err != nil {
		s.storeError(c, err)
		return
	}
	if vehicles == nil {
		vehicles = []Vehicle{}
	}
	c.JSON(http.StatusOK, vehicles)
}

func (s *HTTPServer) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	v, err := s.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *HTTPServer) Create(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	vin, ok := validateVIN(req.VIN)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vin is required and must be at most 17 characters"})
		return
	}

	v := &Vehicle{
		VIN:   vin,
		Make:  req.Make,
		Model: req.Model,
		Year:  req.Year,
		Notes: req.Notes,
	}
	if err := s.repo.Insert(c.Request.Context(), v); err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (s *HTTPServer) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch := make(map[string]any)
	if req.VIN != nil {
		vin, ok := validateVIN(*req.VIN)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "vin must be non-empty and at most 17 characters"})
			return
		}
		patch["vin"] = vin
	}
	if req.Make != nil {
		patch["make"] = *req.Make
	}
	if req.Model != nil {
		patch["model"] = *req.Model
	}
	if req.Year != nil {
		patch["year"] = *req.Year
	}
	if req.Notes != nil {
		patch["notes"] = *req.Notes
	}

	v, err := s.repo.UpdatePartial(c.Request.Context(), id, patch)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *HTTPServer) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := s.repo.DeleteByID(c.Request.Context(), id); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// storeError translates repo errors into status codes. Unclassified failures
// are logged server-side and surfaced as a bare 500.
func (s *HTTPServer) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ErrDuplicateVIN):
		c.JSON(http.StatusConflict, gin.H{"error": "vin already exists"})
	default:
		if s.log != nil {
			s.log.Errorf("vehicle store failure: %v", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
