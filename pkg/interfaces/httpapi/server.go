// Package httpapi exposes the simulation engine over HTTP.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rpk-planning/capsim/pkg/application/dto"
	"github.com/rpk-planning/capsim/pkg/application/services/compare"
	"github.com/rpk-planning/capsim/pkg/application/services/simulation"
	"github.com/rpk-planning/capsim/pkg/domain/entities"
	"github.com/rpk-planning/capsim/pkg/domain/repositories"
)

// Server wires the evaluator and scenario service into an HTTP router.
type Server struct {
	evaluator *simulation.Evaluator
	scenarios *simulation.ScenarioService
	logger    *slog.Logger
}

// NewServer creates an HTTP server over the given services
func NewServer(evaluator *simulation.Evaluator, scenarios *simulation.ScenarioService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		evaluator: evaluator,
		scenarios: scenarios,
		logger:    logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/simulate/base", s.handleSimulateBase)
		api.GET("/simulate/:id", s.handleSimulateScenario)
		api.POST("/simulate/preview", s.handlePreview)
		api.POST("/compare", s.handleCompare)

		api.GET("/scenarios", s.handleListScenarios)
		api.POST("/scenarios", s.handleCreateScenario)
		api.PUT("/scenarios/:id", s.handleRenameScenario)
		api.PUT("/scenarios/:id/full", s.handleReplaceScenario)
		api.DELETE("/scenarios/:id", s.handleDeleteScenario)
		api.GET("/scenarios/:id/history", s.handleScenarioHistory)
	}

	return r
}

func (s *Server) handleSimulateBase(c *gin.Context) {
	req := dto.EvaluationRequest{ScenarioID: simulation.BaseScenarioID}
	if !s.bindQueryParams(c, &req) {
		return
	}
	s.evaluate(c, req)
}

func (s *Server) handleSimulateScenario(c *gin.Context) {
	req := dto.EvaluationRequest{ScenarioID: c.Param("id")}
	if !s.bindQueryParams(c, &req) {
		return
	}
	s.evaluate(c, req)
}

func (s *Server) handlePreview(c *gin.Context) {
	var req dto.EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// A preview never resolves against a stored scenario.
	req.ScenarioID = ""
	s.evaluate(c, req)
}

func (s *Server) evaluate(c *gin.Context, req dto.EvaluationRequest) {
	result, err := s.evaluator.Evaluate(c.Request.Context(), req)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// compareRequest evaluates two requests and diffs the results.
type compareRequest struct {
	A dto.EvaluationRequest `json:"a"`
	B dto.EvaluationRequest `json:"b"`
}

func (s *Server) handleCompare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resultA, err := s.evaluator.Evaluate(c.Request.Context(), req.A)
	if err != nil {
		s.renderError(c, err)
		return
	}
	resultB, err := s.evaluator.Evaluate(c.Request.Context(), req.B)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, compare.Compare(resultA, resultB))
}

// scenarioPayload is the create/replace request body.
type scenarioPayload struct {
	Name             string                                      `json:"name"`
	Description      string                                      `json:"description"`
	WorkingDays      int                                         `json:"working_days"`
	GlobalShiftHours int                                         `json:"global_shift_hours"`
	CenterConfigs    map[entities.CenterID]entities.CenterConfig `json:"center_configs"`
	Overrides        []entities.Override                         `json:"overrides"`
}

func (s *Server) handleListScenarios(c *gin.Context) {
	summaries, err := s.scenarios.List(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (s *Server) handleCreateScenario(c *gin.Context) {
	var payload scenarioPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scenario, err := s.scenarios.Create(c.Request.Context(),
		payload.Name, payload.Description,
		payload.WorkingDays, payload.GlobalShiftHours,
		payload.CenterConfigs, payload.Overrides)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, scenario)
}

type renamePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleRenameScenario(c *gin.Context) {
	var payload renamePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scenario, err := s.scenarios.Rename(c.Request.Context(), c.Param("id"), payload.Name, payload.Description)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, scenario)
}

func (s *Server) handleReplaceScenario(c *gin.Context) {
	var payload scenarioPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scenario, err := s.scenarios.Replace(c.Request.Context(), c.Param("id"),
		payload.Name, payload.Description,
		payload.WorkingDays, payload.GlobalShiftHours,
		payload.CenterConfigs, payload.Overrides)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, scenario)
}

func (s *Server) handleDeleteScenario(c *gin.Context) {
	if err := s.scenarios.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "scenario deleted"})
}

func (s *Server) handleScenarioHistory(c *gin.Context) {
	history, err := s.scenarios.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// bindQueryParams reads the optional working_days and shift_hours query
// parameters. Returns false after rendering an error response.
func (s *Server) bindQueryParams(c *gin.Context, req *dto.EvaluationRequest) bool {
	if v := c.Query("working_days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "working_days must be an integer"})
			return false
		}
		req.WorkingDays = &days
	}
	if v := c.Query("shift_hours"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "shift_hours must be an integer"})
			return false
		}
		req.GlobalShiftHours = &hours
	}
	return true
}

func (s *Server) renderError(c *gin.Context, err error) {
	var validationErr *entities.ValidationError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrDuplicateName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
