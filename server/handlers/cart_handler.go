package handlers

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"almacenes/catalog"
	"almacenes/exporting"
	apperrors "almacenes/server/errors"
	"almacenes/server/services"
)

// CartHandler обслуживает операции с корзиной и комбинированный импорт.
type CartHandler struct {
	carts         *services.CartService
	catalogs      *services.CatalogService
	requests      *services.RequestService
	matches       *services.MatchService
	plantillaPath string
	maxUpload     int64
}

// NewCartHandler создаёт обработчик корзины.
func NewCartHandler(carts *services.CartService, catalogs *services.CatalogService, requests *services.RequestService, matches *services.MatchService, plantillaPath string, maxUpload int64) *CartHandler {
	return &CartHandler{
		carts:         carts,
		catalogs:      catalogs,
		requests:      requests,
		matches:       matches,
		plantillaPath: plantillaPath,
		maxUpload:     maxUpload,
	}
}

type cartLine struct {
	Ref   *string `json:"ref"`
	Color *string `json:"color"`
	Talla *string `json:"talla"`
	Qty   *int64  `json:"qty"`
}

// bindCartLine разбирает тело запроса корзины. Количество по умолчанию 1.
func bindCartLine(c *gin.Context) (catalog.Identity, int64, bool) {
	var line cartLine
	if err := c.ShouldBindJSON(&line); err != nil {
		SendValidationError(c, "Cuerpo de la petición inválido")
		return catalog.Identity{}, 0, false
	}
	if line.Ref == nil {
		SendValidationError(c, "El campo ref es obligatorio")
		return catalog.Identity{}, 0, false
	}
	qty := int64(1)
	if line.Qty != nil {
		qty = *line.Qty
	}
	return catalog.NewIdentity(line.Ref, line.Color, line.Talla), qty, true
}

// HandleCartAdd добавляет количество к ручной части корзины.
// @Summary Добавить в корзину
// @Tags cart
// @Accept json
// @Produce json
// @Param payload body handlers.cartLine true "Строка корзины"
// @Success 200 {object} map[string]interface{}
// @Router /api/cart/add [post]
func (h *CartHandler) HandleCartAdd(c *gin.Context) {
	id, qty, ok := bindCartLine(c)
	if !ok {
		return
	}
	items := h.carts.Add(id, qty)
	SendJSONResponse(c, http.StatusOK, gin.H{"ok": true, "items": items})
}

// HandleCartRemove убавляет количество в ручной части корзины.
// @Summary Убрать из корзины
// @Tags cart
// @Accept json
// @Produce json
// @Param payload body handlers.cartLine true "Строка корзины"
// @Success 200 {object} map[string]interface{}
// @Router /api/cart/remove [post]
func (h *CartHandler) HandleCartRemove(c *gin.Context) {
	id, qty, ok := bindCartLine(c)
	if !ok {
		return
	}
	items := h.carts.Remove(id, qty)
	SendJSONResponse(c, http.StatusOK, gin.H{"ok": true, "items": items})
}

// HandleCartUpdate устанавливает точное количество в ручной части корзины.
// @Summary Обновить позицию корзины
// @Tags cart
// @Accept json
// @Produce json
// @Param payload body handlers.cartLine true "Строка корзины"
// @Success 200 {object} map[string]interface{}
// @Router /api/cart/update [post]
func (h *CartHandler) HandleCartUpdate(c *gin.Context) {
	id, qty, ok := bindCartLine(c)
	if !ok {
		return
	}
	items := h.carts.Update(id, qty)
	SendJSONResponse(c, http.StatusOK, gin.H{"ok": true, "items": items})
}

// HandleCartView возвращает содержимое корзины по разделам.
// @Summary Просмотр корзины
// @Tags cart
// @Produce json
// @Success 200 {object} services.CartView
// @Router /api/cart/view [get]
func (h *CartHandler) HandleCartView(c *gin.Context) {
	SendJSONResponse(c, http.StatusOK, h.carts.View())
}

// HandleCartClear очищает корзину целиком.
// @Summary Очистить корзину
// @Tags cart
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/cart/clear [post]
func (h *CartHandler) HandleCartClear(c *gin.Context) {
	h.carts.Clear()
	SendJSONResponse(c, http.StatusOK, gin.H{"ok": true, "items": 0})
}

// HandleCartCheckout выгружает корзину в CSV или XLSX.
// Для XLSX при наличии шаблона строки вписываются в него.
// @Summary Оформление корзины
// @Tags cart
// @Produce application/octet-stream
// @Param format query string false "csv или xlsx" default(xlsx)
// @Param origin query string false "Склад отправления"
// @Param destination query string false "Склад назначения"
// @Param fecha query string false "Дата"
// @Param pedido_ref query string false "Референция заказа"
// @Success 200 {file} file
// @Router /api/cart/checkout [get]
func (h *CartHandler) HandleCartCheckout(c *gin.Context) {
	format, err := exporting.ParseFormat(c.Query("format"))
	if err != nil {
		SendJSONError(c, err)
		return
	}

	meta := exporting.Metadata{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Fecha:       c.Query("fecha"),
		PedidoRef:   c.Query("pedido_ref"),
	}
	lines := h.carts.Checkout()

	var data []byte
	if format == exporting.FormatXLSX && h.plantillaExists() {
		data, err = exporting.FillPlantilla(h.plantillaPath, lines, meta)
	} else {
		headers, rows := exporting.CheckoutRows(lines, meta)
		data, err = exporting.Write(format, headers, rows)
	}
	if err != nil {
		SendJSONError(c, err)
		return
	}

	sendAttachment(c, "cart_checkout."+string(format), format.ContentType(), data)
}

func (h *CartHandler) plantillaExists() bool {
	if h.plantillaPath == "" {
		return false
	}
	info, err := os.Stat(h.plantillaPath)
	return err == nil && !info.IsDir()
}

// HandleImportAndMatch загружает петицию, сопоставляет её с каталогом по
// умолчанию и заменяет импортированный раздел корзины найденными строками.
// @Summary Импорт петиции в корзину
// @Tags cart
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл петиции"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/import-and-match [post]
func (h *CartHandler) HandleImportAndMatch(c *gin.Context) {
	ix := h.catalogs.Default()
	if ix == nil {
		SendJSONError(c, apperrors.NewNotFoundError("Catálogo por defecto no cargado", nil))
		return
	}

	filename, f, err := openUpload(c, h.maxUpload)
	if err != nil {
		SendJSONError(c, err)
		return
	}
	defer f.Close()

	lines, err := h.requests.Parse(filename, f)
	if err != nil {
		SendJSONError(c, err)
		return
	}

	importID, report := h.matches.Match(ix, lines)
	items := h.carts.MergeImport(report, importID)

	slog.Info("Импорт петиции завершён",
		"import_id", importID,
		"total", report.Total,
		"encontrados", report.Found,
		"cart_items", items,
	)
	SendJSONResponse(c, http.StatusOK, gin.H{
		"success":        true,
		"total":          report.Total,
		"encontrados":    report.Found,
		"no_encontrados": report.NotFound,
		"cart_items":     items,
		"import_id":      importID,
	})
}
