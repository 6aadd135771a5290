package api

import (
	"github.com/gin-gonic/gin"

	"chaos-service/pkg/orchestrator"
)

// NewRouter wires the chaos endpoints. Auth, persistence and business policy
// live in the surrounding platform, not here.
func NewRouter(orc *orchestrator.Orchestrator) *gin.Engine {
	handler := NewChaosHandler(orc)

	router := gin.New()
	router.Use(Recovery())
	router.Use(RequestLogger())

	router.GET("/health", handler.Health)

	chaos := router.Group("/api/chaos")
	{
		chaos.POST("/execute", handler.Execute)
		chaos.GET("/scenarios", handler.ListScenarios)
	}

	return router
}
