package services

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"almacenes/catalog"
	apperrors "almacenes/server/errors"
	"almacenes/tabular"
)

// CatalogService сервис загрузки и хранения каталогов
type CatalogService struct {
	store *Store[*catalog.Index]

	defaultMu    sync.RWMutex
	defaultIndex *catalog.Index
}

// NewCatalogService создает сервис каталогов
func NewCatalogService(capacity int, ttl time.Duration) *CatalogService {
	return &CatalogService{store: NewStore[*catalog.Index](capacity, ttl)}
}

// Upload разбирает загруженную таблицу каталога, нормализует ее и строит
// индекс. Возвращает идентификатор каталога и число строк.
func (s *CatalogService) Upload(filename string, r io.Reader) (string, int, error) {
	table, err := tabular.ReadTable(filename, r)
	if err != nil {
		return "", 0, apperrors.WrapError(err, "no se pudo leer el catálogo")
	}

	entries, err := catalog.NormalizeCatalog(table)
	if err != nil {
		return "", 0, apperrors.WrapError(err, "no se pudo normalizar el catálogo")
	}

	ix := catalog.BuildIndex(entries)
	id := s.store.Put(ix)

	slog.Info("Каталог загружен",
		"catalog_id", id,
		"rows", ix.Len(),
		"file", filename,
	)
	return id, ix.Len(), nil
}

// Get возвращает индекс каталога по идентификатору
func (s *CatalogService) Get(id string) (*catalog.Index, error) {
	ix, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NewNotFoundError("Catálogo o petición no encontrados", nil)
	}
	return ix, nil
}

// LoadDefault загружает каталог по умолчанию с диска. Отсутствие файла —
// не фатально: поиск и корзина работают без каталога, строки просто
// останутся неразрешенными.
func (s *CatalogService) LoadDefault(path string) error {
	if _, err := os.Stat(path); err != nil {
		slog.Warn("Каталог по умолчанию не найден", "path", path)
		return nil
	}

	table, err := tabular.ReadTableFile(path)
	if err != nil {
		return apperrors.WrapError(err, "no se pudo leer el catálogo por defecto")
	}
	entries, err := catalog.NormalizeCatalog(table)
	if err != nil {
		return apperrors.WrapError(err, "no se pudo normalizar el catálogo por defecto")
	}

	ix := catalog.BuildIndex(entries)

	s.defaultMu.Lock()
	s.defaultIndex = ix
	s.defaultMu.Unlock()

	slog.Info("Каталог по умолчанию загружен", "path", path, "rows", ix.Len())
	return nil
}

// SetDefault подменяет каталог по умолчанию уже построенным индексом
// (используется тестами и горячей перезагрузкой)
func (s *CatalogService) SetDefault(ix *catalog.Index) {
	s.defaultMu.Lock()
	s.defaultIndex = ix
	s.defaultMu.Unlock()
}

// Default возвращает индекс каталога по умолчанию; nil — не загружен
func (s *CatalogService) Default() *catalog.Index {
	s.defaultMu.RLock()
	defer s.defaultMu.RUnlock()
	return s.defaultIndex
}
