package catalog

import (
	"database/sql"
	"strings"
)

// Index индекс каталога по идентичности товара. Строится один раз из
// нормализованной таблицы и далее не изменяется, поэтому безопасен для
// конкурентного чтения без блокировок.
type Index struct {
	byIdentity map[Identity]*Entry
	entries    []Entry
}

// BuildIndex строит индекс из нормализованных записей каталога.
// Записи обходятся в порядке таблицы; при дублирующейся идентичности
// в индексе остается первая запись, но полный список сохраняет все строки
// (дубликаты видны при поиске и перечислении вариантов).
func BuildIndex(entries []Entry) *Index {
	ix := &Index{
		byIdentity: make(map[Identity]*Entry, len(entries)),
		entries:    entries,
	}
	for i := range ix.entries {
		entry := &ix.entries[i]
		if _, exists := ix.byIdentity[entry.Identity]; !exists {
			ix.byIdentity[entry.Identity] = entry
		}
	}
	return ix
}

// Lookup возвращает запись каталога по идентичности за O(1)
func (ix *Index) Lookup(id Identity) (*Entry, bool) {
	entry, ok := ix.byIdentity[id]
	return entry, ok
}

// Entries возвращает все записи каталога в исходном порядке
func (ix *Index) Entries() []Entry {
	return ix.entries
}

// Len количество строк каталога (включая дубликаты идентичностей)
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Variant вариант товара внутри группы поиска
type Variant struct {
	Color *string `json:"color"`
	Talla *string `json:"talla"`
	EAN   *string `json:"ean"`
}

// SearchGroup группа результатов поиска по паре (референс, наименование)
type SearchGroup struct {
	Ref       *string   `json:"ref"`
	Nombre    *string   `json:"nombre"`
	Variantes []Variant `json:"variantes"`
}

// searchKey ключ группировки результатов поиска
type searchKey struct {
	ref  sql.NullString
	name sql.NullString
}

// Search ищет товары по подстроке запроса без учета регистра.
// Совпадение проверяется по референсу и, когда оно присутствует,
// по наименованию; отсутствующие поля никогда не совпадают.
// Результаты группируются по (референс, наименование) с перечислением
// вариантов (цвет, размер, код) в порядке первого вхождения.
func (ix *Index) Search(query string) []SearchGroup {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var groups []SearchGroup
	groupIdx := make(map[searchKey]int)

	for i := range ix.entries {
		entry := &ix.entries[i]
		if !matchesQuery(entry, q) {
			continue
		}

		key := searchKey{ref: entry.Identity.Ref, name: entry.Name}
		idx, exists := groupIdx[key]
		if !exists {
			groups = append(groups, SearchGroup{
				Ref:    StringOrNil(entry.Identity.Ref),
				Nombre: StringOrNil(entry.Name),
			})
			idx = len(groups) - 1
			groupIdx[key] = idx
		}

		groups[idx].Variantes = append(groups[idx].Variantes, Variant{
			Color: StringOrNil(entry.Identity.Color),
			Talla: StringOrNil(entry.Identity.Talla),
			EAN:   StringOrNil(entry.Code),
		})
	}

	return groups
}

func matchesQuery(entry *Entry, q string) bool {
	if entry.Identity.Ref.Valid && strings.Contains(strings.ToLower(entry.Identity.Ref.String), q) {
		return true
	}
	if entry.Name.Valid && strings.Contains(strings.ToLower(entry.Name.String), q) {
		return true
	}
	return false
}
