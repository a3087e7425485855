package services

import (
	"io"
	"log/slog"
	"time"

	"almacenes/catalog"
	apperrors "almacenes/server/errors"
	"almacenes/tabular"
)

// RequestService сервис загрузки и хранения петиций склада
type RequestService struct {
	store *Store[[]catalog.RequestLine]
}

// NewRequestService создает сервис петиций
func NewRequestService(capacity int, ttl time.Duration) *RequestService {
	return &RequestService{store: NewStore[[]catalog.RequestLine](capacity, ttl)}
}

// Upload разбирает и нормализует загруженную таблицу петиции.
// Возвращает идентификатор петиции и число строк.
func (s *RequestService) Upload(filename string, r io.Reader) (string, int, error) {
	lines, err := s.Parse(filename, r)
	if err != nil {
		return "", 0, err
	}

	id := s.store.Put(lines)
	slog.Info("Петиция загружена",
		"request_id", id,
		"rows", len(lines),
		"file", filename,
	)
	return id, len(lines), nil
}

// Parse разбирает таблицу петиции, не сохраняя ее в хранилище
// (используется импортом продаж, которому нужен только отчет)
func (s *RequestService) Parse(filename string, r io.Reader) ([]catalog.RequestLine, error) {
	table, err := tabular.ReadTable(filename, r)
	if err != nil {
		return nil, apperrors.WrapError(err, "no se pudo leer la petición")
	}

	lines, err := catalog.NormalizeRequest(table)
	if err != nil {
		return nil, apperrors.WrapError(err, "no se pudo normalizar la petición")
	}
	return lines, nil
}

// Get возвращает строки петиции по идентификатору
func (s *RequestService) Get(id string) ([]catalog.RequestLine, error) {
	lines, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NewNotFoundError("Catálogo o petición no encontrados", nil)
	}
	return lines, nil
}
