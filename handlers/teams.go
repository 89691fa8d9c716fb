package handlers

import (
	"net/http"

	"homecollect/models"
	"homecollect/services/team"

	"github.com/gin-gonic/gin"
)

// TeamHandler provisions collection teams.
type TeamHandler struct {
	Teams team.TeamService
}

func NewTeamHandler(svc team.TeamService) *TeamHandler {
	return &TeamHandler{Teams: svc}
}

func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	t, err := h.Teams.CreateTeam(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.Teams.ListTeams(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}
