package tabular

import (
	"fmt"
	"strings"
)

// Table универсальное табличное представление загруженного файла.
// Заголовки сохраняют исходный порядок колонок; строки хранятся как
// отображение заголовок -> значение (все значения обрезаны от пробелов).
type Table struct {
	Headers []string
	Rows    []map[string]string

	// SourceName имя исходного файла (для сообщений об ошибках и логов)
	SourceName string
}

// RowCount количество строк данных (без заголовка)
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Column возвращает все значения указанной колонки в порядке строк
func (t *Table) Column(header string) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[header]
	}
	return values
}

// FormatError ошибка формата входного файла: файл не разбирается как таблица
// или не содержит ни одной строки данных. Не восстанавливается внутри движка,
// всегда поднимается вызывающей стороне.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError создает FormatError с причиной для пользователя
func NewFormatError(reason string, err error) *FormatError {
	return &FormatError{Reason: reason, Err: err}
}

// buildTable собирает Table из сырых строк: первая строка — заголовки,
// остальные — данные. Полностью пустые строки пропускаются.
func buildTable(allRows [][]string, sourceName string) (*Table, error) {
	if len(allRows) == 0 {
		return nil, NewFormatError("Archivo vacío", nil)
	}

	headers := cleanHeaders(allRows[0])

	rows := make([]map[string]string, 0, len(allRows)-1)
	for _, raw := range allRows[1:] {
		if isRowEmpty(raw) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(raw) {
				row[header] = strings.TrimSpace(raw[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, NewFormatError("Archivo vacío", nil)
	}

	return &Table{Headers: headers, Rows: rows, SourceName: sourceName}, nil
}

// cleanHeaders обрезает пробелы у заголовков; пустые получают позиционное имя
func cleanHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Columna_%d", i+1)
		}
		headers[i] = h
	}
	return headers
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
