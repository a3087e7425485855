package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "almacenes/server/errors"
	"almacenes/server/services"
)

// UploadHandler обслуживает загрузку каталогов и петиций.
type UploadHandler struct {
	catalogs       *services.CatalogService
	requests       *services.RequestService
	maxUploadBytes int64
}

// NewUploadHandler создаёт обработчик загрузки файлов.
func NewUploadHandler(catalogs *services.CatalogService, requests *services.RequestService, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		catalogs:       catalogs,
		requests:       requests,
		maxUploadBytes: maxUploadBytes,
	}
}

// openUpload извлекает файл из multipart-формы с контролем размера.
func openUpload(c *gin.Context, maxBytes int64) (string, multipart.File, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, apperrors.NewValidationError("Falta el archivo en el formulario", err)
	}
	if fileHeader.Size > maxBytes {
		return "", nil, apperrors.NewValidationError("El archivo supera el tamaño máximo permitido", nil)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", nil, apperrors.NewInternalError("open uploaded file", err)
	}
	return fileHeader.Filename, f, nil
}

// HandleCatalogUpload загружает и индексирует каталог.
// @Summary Загрузка каталога
// @Description Принимает CSV/XLSX каталог, нормализует и индексирует его
// @Tags catalog
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл каталога"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/catalog/upload [post]
func (h *UploadHandler) HandleCatalogUpload(c *gin.Context) {
	filename, f, err := openUpload(c, h.maxUploadBytes)
	if err != nil {
		SendJSONError(c, err)
		return
	}
	defer f.Close()

	id, rows, err := h.catalogs.Upload(filename, f)
	if err != nil {
		SendJSONError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"catalog_id": id,
		"rows":       rows,
	})
}

// HandleRequestUpload загружает и разбирает петицию на подбор.
// @Summary Загрузка петиции
// @Description Принимает CSV/XLSX петицию и нормализует её строки
// @Tags request
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл петиции"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/request/upload [post]
func (h *UploadHandler) HandleRequestUpload(c *gin.Context) {
	filename, f, err := openUpload(c, h.maxUploadBytes)
	if err != nil {
		SendJSONError(c, err)
		return
	}
	defer f.Close()

	id, rows, err := h.requests.Upload(filename, f)
	if err != nil {
		SendJSONError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"request_id": id,
		"rows":       rows,
	})
}
