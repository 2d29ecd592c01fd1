package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/makara-hq/portfolio-backend/internal/models"
	"github.com/makara-hq/portfolio-backend/internal/repository"
	"github.com/makara-hq/portfolio-backend/internal/service"
)

// ============================================
// Project Handler
// ============================================

type ProjectHandler struct {
	projectService service.ProjectService
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), &repository.Project{
		PMNames:      req.PMNames,
		Name:         req.Name,
		Description:  req.Description,
		Thumbnail:    req.Thumbnail,
		Client:       req.Client,
		Type:         req.Type,
		URL:          req.URL,
		BugReportURL: req.BugReportURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.ProjectResponse, len(projects))
	for i, p := range projects {
		response[i] = toProjectResponse(p)
	}
	c.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), id, service.ProjectUpdate{
		PMNames:      req.PMNames,
		Name:         req.Name,
		Description:  req.Description,
		Thumbnail:    req.Thumbnail,
		Client:       req.Client,
		Type:         req.Type,
		URL:          req.URL,
		BugReportURL: req.BugReportURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Project deleted successfully"})
}
