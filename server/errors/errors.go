// Package errors определяет ошибки приложения с HTTP статусом.
// Таксономия: ошибка формата входной таблицы -> 400, неизвестный
// идентификатор каталога/петиции/сопоставления -> 404, всё остальное ->
// 500 с общим сообщением для пользователя (детали только в логах).
// Отсутствующее поле, колонка или несовпавшая идентичность ошибкой
// не являются — они представляются отсутствующим значением.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"almacenes/tabular"
)

// AppError представляет ошибку приложения с HTTP статусом и контекстом
type AppError struct {
	Code    int    `json:"status_code"` // HTTP статус код
	Message string `json:"message"`     // Сообщение для пользователя
	Err     error  `json:"-"`           // Внутренняя ошибка для логов, не сериализуется
}

// Error реализует интерфейс error
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает вложенную ошибку для errors.Is и errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode возвращает HTTP статус код ошибки
func (e *AppError) StatusCode() int {
	return e.Code
}

// UserMessage возвращает сообщение для пользователя
func (e *AppError) UserMessage() string {
	return e.Message
}

// NewNotFoundError создает ошибку 404 Not Found
func NewNotFoundError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: message,
		Err:     err,
	}
}

// NewValidationError создает ошибку 400 Bad Request
func NewValidationError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
		Err:     err,
	}
}

// NewInternalError создает ошибку 500 Internal Server Error
// Для пользователя возвращается общее сообщение, детали только в логах
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "Error interno del servidor",
		Err:     errors.Join(errors.New(message), err),
	}
}

// WrapError оборачивает существующую ошибку с контекстом.
// AppError сохраняет свой статус, FormatError таблиц становится 400,
// всё остальное — 500.
func WrapError(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Err:     appErr.Err,
		}
	}

	var formatErr *tabular.FormatError
	if errors.As(err, &formatErr) {
		return NewValidationError(formatErr.Reason, formatErr.Err)
	}

	return NewInternalError(message, err)
}
