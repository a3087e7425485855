package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "almacenes/server/errors"
	"almacenes/server/middleware"
)

// errorMetrics собирает статистику ошибок, выдаваемых обработчиками.
// Снимок доступен через эндпоинт мониторинга.
var errorMetrics = apperrors.NewErrorMetricsCollector()

// SendJSONResponse отправляет успешный JSON-ответ.
func SendJSONResponse(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// SendJSONError преобразует ошибку в AppError, логирует её и отправляет
// клиенту JSON с безопасным для пользователя сообщением.
func SendJSONError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.WrapError(err, "error no clasificado")
	}

	requestID := middleware.GetRequestIDFromGin(c)
	slog.Error("Ошибка обработки запроса",
		"request_id", requestID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", appErr.StatusCode(),
		"error", appErr.Error(),
	)

	errorMetrics.Record(c.FullPath(), appErr.StatusCode(), appErr.Error())

	c.AbortWithStatusJSON(appErr.StatusCode(), gin.H{
		"detail":     appErr.UserMessage(),
		"request_id": requestID,
	})
}

// SendValidationError отправляет ошибку валидации входных данных.
func SendValidationError(c *gin.Context, message string) {
	SendJSONError(c, apperrors.NewValidationError(message, nil))
}

// sendAttachment отправляет бинарный файл как вложение.
func sendAttachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
