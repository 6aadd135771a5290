package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chaos-service/pkg/cerrors"
	"chaos-service/pkg/log"
	"chaos-service/pkg/orchestrator"
	"chaos-service/pkg/scenarios"
)

// ExecuteRequest is the inbound chaos request. Duration is milliseconds and
// optional; the scenario's default applies when it is absent.
type ExecuteRequest struct {
	Scenario string `json:"scenario" binding:"required"`
	Duration int64  `json:"duration"`
}

type ChaosHandler struct {
	orchestrator *orchestrator.Orchestrator
}

func NewChaosHandler(orc *orchestrator.Orchestrator) *ChaosHandler {
	return &ChaosHandler{
		orchestrator: orc,
	}
}

func (h *ChaosHandler) Execute(c *gin.Context) {
	var req ExecuteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"message": err.Error(),
		})
		return
	}

	result, err := h.orchestrator.Execute(c.Request.Context(), scenarios.Request{
		ScenarioID: req.Scenario,
		Duration:   time.Duration(req.Duration) * time.Millisecond,
	})
	if err != nil {
		rootCause, errorType := cerrors.GetRootCauseAndErrorCode(err)
		if errorType == cerrors.ErrorTypeScenarioValidation {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          "Unknown scenario",
				"message":        rootCause,
				"validScenarios": h.validScenarioIDs(),
			})
			return
		}

		log.Errorf("[API]: Chaos execution failed, %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Chaos execution failed",
			"message": rootCause,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ChaosHandler) ListScenarios(c *gin.Context) {
	descriptors := h.orchestrator.Scenarios()

	scenariosOut := make([]gin.H, 0, len(descriptors))
	for _, d := range descriptors {
		scenariosOut = append(scenariosOut, gin.H{
			"id":                d.ID,
			"displayName":       d.DisplayName,
			"description":       d.Description,
			"defaultDurationMs": d.DefaultDuration.Milliseconds(),
			"expectedEffects":   d.ExpectedEffects,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"scenarios": scenariosOut,
	})
}

func (h *ChaosHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "chaos-service",
	})
}

func (h *ChaosHandler) validScenarioIDs() []string {
	descriptors := h.orchestrator.Scenarios()
	ids := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		ids = append(ids, d.ID)
	}
	return ids
}
