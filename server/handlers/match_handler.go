package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"almacenes/catalog"
	"almacenes/exporting"
	"almacenes/server/services"
)

// previewLimit ограничивает количество строк предпросмотра в ответе.
const previewLimit = 20

// MatchHandler обслуживает запуск подбора и выгрузку его результатов.
type MatchHandler struct {
	catalogs *services.CatalogService
	requests *services.RequestService
	matches  *services.MatchService
}

// NewMatchHandler создаёт обработчик подбора.
func NewMatchHandler(catalogs *services.CatalogService, requests *services.RequestService, matches *services.MatchService) *MatchHandler {
	return &MatchHandler{catalogs: catalogs, requests: requests, matches: matches}
}

type matchRequest struct {
	CatalogID string `json:"catalog_id"`
	RequestID string `json:"request_id"`
}

// previewRow — строка предпросмотра результата подбора.
type previewRow struct {
	Ref      *string `json:"ref"`
	Color    *string `json:"color"`
	Talla    *string `json:"talla"`
	Cantidad *int64  `json:"cantidad"`
	EAN      *string `json:"ean"`
	Nombre   *string `json:"nombre"`
	Estado   string  `json:"estado"`
}

func buildPreview(report *catalog.Report, limit int) []previewRow {
	preview := make([]previewRow, 0, limit)
	for _, out := range report.Outcomes {
		if len(preview) >= limit {
			break
		}
		row := previewRow{
			Ref:    catalog.StringOrNil(out.Line.Identity.Ref),
			Color:  catalog.StringOrNil(out.Line.Identity.Color),
			Talla:  catalog.StringOrNil(out.Line.Identity.Talla),
			Estado: "no_encontrado",
		}
		if out.Line.Qty.Valid {
			qty := out.Line.Qty.Int64
			row.Cantidad = &qty
		}
		if out.Found {
			row.Estado = "encontrado"
			row.EAN = catalog.StringOrNil(out.Entry.Code)
			row.Nombre = catalog.StringOrNil(out.Entry.Name)
		}
		preview = append(preview, row)
	}
	return preview
}

// HandleMatch запускает подбор петиции по каталогу.
// @Summary Подбор петиции по каталогу
// @Description Сопоставляет строки петиции с каталогом и возвращает сводку
// @Tags match
// @Accept json
// @Produce json
// @Param payload body handlers.matchRequest true "Идентификаторы каталога и петиции"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/match [post]
func (h *MatchHandler) HandleMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendValidationError(c, "Cuerpo de la petición inválido")
		return
	}

	ix, err := h.catalogs.Get(req.CatalogID)
	if err != nil {
		SendJSONError(c, err)
		return
	}
	lines, err := h.requests.Get(req.RequestID)
	if err != nil {
		SendJSONError(c, err)
		return
	}

	id, report := h.matches.Match(ix, lines)
	SendJSONResponse(c, http.StatusOK, gin.H{
		"match_id":       id,
		"total":          report.Total,
		"encontrados":    report.Found,
		"no_encontrados": report.NotFound,
		"preview":        buildPreview(report, previewLimit),
	})
}

// HandleMatchExport выгружает результат подбора в CSV или XLSX.
// @Summary Экспорт результата подбора
// @Description Выгружает все либо только ненайденные строки подбора
// @Tags match
// @Produce application/octet-stream
// @Param id path string true "Идентификатор подбора"
// @Param format query string false "csv или xlsx" default(xlsx)
// @Param type query string false "all или missing" default(all)
// @Success 200 {file} file
// @Failure 404 {object} map[string]interface{}
// @Router /api/match/{id}/export [get]
func (h *MatchHandler) HandleMatchExport(c *gin.Context) {
	report, err := h.matches.Get(c.Param("id"))
	if err != nil {
		SendJSONError(c, err)
		return
	}

	format, err := exporting.ParseFormat(c.Query("format"))
	if err != nil {
		SendJSONError(c, err)
		return
	}

	exportType := c.DefaultQuery("type", "all")
	if exportType != "all" && exportType != "missing" {
		SendValidationError(c, "Tipo de exportación no soportado")
		return
	}

	headers, rows := exporting.MatchReportRows(report, exportType == "missing")
	data, err := exporting.Write(format, headers, rows)
	if err != nil {
		SendJSONError(c, err)
		return
	}

	filename := "match_" + c.Param("id") + "_" + exportType + "." + string(format)
	sendAttachment(c, filename, format.ContentType(), data)
}
