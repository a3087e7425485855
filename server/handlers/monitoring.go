package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleHealth — проверка работоспособности сервиса.
// @Summary Проверка здоровья
// @Tags monitoring
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleErrorMetrics возвращает накопленную статистику ошибок обработчиков.
// @Summary Статистика ошибок
// @Tags monitoring
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/monitoring/errors [get]
func HandleErrorMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, errorMetrics.Snapshot())
}
