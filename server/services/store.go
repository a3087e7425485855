package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store хранилище загруженных артефактов (каталогов, петиций, отчетов
// сопоставления), ключ — сгенерированный идентификатор. Явная замена
// глобальных map прежней версии сервиса: хранилище создается на старте
// и передается сервисам как зависимость.
//
// Политика вытеснения: записи живут не дольше TTL, при переполнении
// вытесняется старейшая. Загруженные снимки неизменяемы, поэтому чтение
// идет под RLock без копирования.
type Store[T any] struct {
	mu       sync.RWMutex
	entries  map[string]storeEntry[T]
	order    []string
	capacity int
	ttl      time.Duration
}

type storeEntry[T any] struct {
	value   T
	addedAt time.Time
}

// NewStore создает хранилище с ограничением емкости и TTL записей
func NewStore[T any](capacity int, ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries:  make(map[string]storeEntry[T]),
		capacity: capacity,
		ttl:      ttl,
	}
}

// Put сохраняет значение и возвращает сгенерированный идентификатор
func (s *Store[T]) Put(value T) string {
	id := newStoreID()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropExpiredLocked()
	// Неположительная емкость отключает вытеснение по размеру
	for s.capacity > 0 && len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
	}

	s.entries[id] = storeEntry[T]{value: value, addedAt: time.Now()}
	s.order = append(s.order, id)
	return id
}

// Get возвращает значение по идентификатору; false — запись не существует
// или истекла
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || (s.ttl > 0 && time.Since(entry.addedAt) > s.ttl) {
		var zero T
		return zero, false
	}
	return entry.value, true
}

// Len количество живых записей
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, entry := range s.entries {
		if s.ttl == 0 || time.Since(entry.addedAt) <= s.ttl {
			n++
		}
	}
	return n
}

// dropExpiredLocked выбрасывает истекшие записи. Вызывается под mu.
func (s *Store[T]) dropExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl)
	kept := s.order[:0]
	for _, id := range s.order {
		if s.entries[id].addedAt.Before(cutoff) {
			delete(s.entries, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}

// newStoreID короткий идентификатор в стиле прежней версии сервиса:
// 12 hex-символов uuid, достаточно для времени жизни хранилища
func newStoreID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
