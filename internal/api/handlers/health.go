package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthCheck returns the health status of the API
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		historyStatus := "disabled"
		if db != nil {
			historyStatus = "enabled"
			if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
				historyStatus = "unreachable"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"engine": gin.H{
				"status":    "ready",
				"analyzers": []string{"functional", "modal", "chromatic"},
			},
			"history": gin.H{
				"status": historyStatus,
			},
		})
	}
}
