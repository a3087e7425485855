package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"almacenes/server/services"
)

// ProductsHandler обслуживает поиск по каталогу по умолчанию.
type ProductsHandler struct {
	products *services.ProductService
}

// NewProductsHandler создаёт обработчик поиска товаров.
func NewProductsHandler(products *services.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// HandleSearch ищет товары по подстроке референции или названия.
// @Summary Поиск товаров
// @Description Подстрочный поиск по каталогу по умолчанию с группировкой вариантов
// @Tags products
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/products/search [get]
func (h *ProductsHandler) HandleSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		SendJSONResponse(c, http.StatusOK, gin.H{"resultados": []any{}})
		return
	}

	groups, err := h.products.Search(query)
	if err != nil {
		SendJSONError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, gin.H{"resultados": groups})
}

// HandleSuggest подсказывает близкие товары по словам запроса.
// @Summary Подсказки по товарам
// @Description Ранжирует товары каталога по пересечению основ слов запроса
// @Tags products
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Param limit query int false "Максимум подсказок" default(10)
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/products/suggest [get]
func (h *ProductsHandler) HandleSuggest(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		SendJSONResponse(c, http.StatusOK, gin.H{"sugerencias": []any{}})
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			SendValidationError(c, "Límite inválido")
			return
		}
		limit = parsed
	}

	suggestions, err := h.products.Suggest(query, limit)
	if err != nil {
		SendJSONError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, gin.H{"sugerencias": suggestions})
}
