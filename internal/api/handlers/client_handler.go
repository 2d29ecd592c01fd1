package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/makara-hq/portfolio-backend/internal/models"
	"github.com/makara-hq/portfolio-backend/internal/service"
)

// ============================================
// Client Handler
// ============================================

type ClientHandler struct {
	clientService service.ClientService
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), req.Name, req.Country)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.ClientResponse, len(clients))
	for i, cl := range clients {
		response[i] = toClientResponse(cl)
	}
	c.JSON(http.StatusOK, response)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), id, service.ClientUpdate{
		Name:    req.Name,
		Country: req.Country,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Client deleted successfully"})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}
