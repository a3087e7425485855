package services

import (
	"log/slog"
	"time"

	"almacenes/catalog"
	apperrors "almacenes/server/errors"
)

// MatchService сервис сопоставления петиций с каталогами и хранения
// отчетов для последующего экспорта
type MatchService struct {
	store *Store[*catalog.Report]
}

// NewMatchService создает сервис сопоставления
func NewMatchService(capacity int, ttl time.Duration) *MatchService {
	return &MatchService{store: NewStore[*catalog.Report](capacity, ttl)}
}

// Match сопоставляет строки петиции с индексом каталога и сохраняет отчет.
// Возвращает идентификатор отчета и сам отчет.
func (s *MatchService) Match(ix *catalog.Index, lines []catalog.RequestLine) (string, *catalog.Report) {
	report := catalog.Match(ix, lines)
	id := s.store.Put(report)

	slog.Info("Сопоставление завершено",
		"match_id", id,
		"total", report.Total,
		"encontrados", report.Found,
		"no_encontrados", report.NotFound,
	)
	return id, report
}

// Get возвращает сохраненный отчет по идентификатору
func (s *MatchService) Get(id string) (*catalog.Report, error) {
	report, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NewNotFoundError("Match no encontrado", nil)
	}
	return report, nil
}
