package services

import (
	"almacenes/catalog"
	apperrors "almacenes/server/errors"
)

// ProductService поиск и подсказки по каталогу по умолчанию
type ProductService struct {
	catalogs *CatalogService
}

// NewProductService создает сервис поиска товаров
func NewProductService(catalogs *CatalogService) *ProductService {
	return &ProductService{catalogs: catalogs}
}

// Search ищет товары по подстроке в каталоге по умолчанию
func (s *ProductService) Search(query string) ([]catalog.SearchGroup, error) {
	ix := s.catalogs.Default()
	if ix == nil {
		return nil, apperrors.NewNotFoundError("Catálogo por defecto no cargado", nil)
	}
	return ix.Search(query), nil
}

// Suggest подбирает похожие товары для ненайденной строки
func (s *ProductService) Suggest(query string, limit int) ([]catalog.Suggestion, error) {
	ix := s.catalogs.Default()
	if ix == nil {
		return nil, apperrors.NewNotFoundError("Catálogo por defecto no cargado", nil)
	}
	return catalog.Suggest(ix, query, limit), nil
}
