package catalog

import (
	"database/sql"
	"strconv"
	"strings"

	"almacenes/tabular"
)

// columnRole роль, которую колонка играет при нормализации таблицы
type columnRole int

const (
	roleReference columnRole = iota
	roleCode
	roleColor
	roleSize
	roleName
	roleQuantity
)

// recognizedColumns декларативная таблица распознаваемых имен колонок.
// Сопоставление точное по строке после обрезки пробелов и приведения
// к нижнему регистру, без нечеткого поиска.
var recognizedColumns = map[string]columnRole{
	"referencia": roleReference,
	"ean":        roleCode,
	"codbarras":  roleCode,
	"color":      roleColor,
	"talla":      roleSize,
	"nombre":     roleName,
	"cantidad":   roleQuantity,
}

// resolveColumns сопоставляет заголовки таблицы ролям. При нескольких
// кандидатах на одну роль побеждает первая по порядку колонка
// (для code это значит: ean имеет приоритет только по позиции).
func resolveColumns(headers []string) map[columnRole]string {
	resolved := make(map[columnRole]string)
	for _, header := range headers {
		key := strings.ToLower(strings.TrimSpace(header))
		role, ok := recognizedColumns[key]
		if !ok {
			continue
		}
		if _, exists := resolved[role]; !exists {
			resolved[role] = header
		}
	}
	return resolved
}

// Entry запись каталога после нормализации. Не изменяется после построения.
type Entry struct {
	Identity Identity
	Code     sql.NullString
	Name     sql.NullString

	// Row исходная строка таблицы (для экспорта и отладки)
	Row map[string]string
}

// RequestLine строка петиции после нормализации
type RequestLine struct {
	Identity Identity
	Qty      sql.NullInt64

	Row map[string]string
}

// NormalizeCatalog нормализует таблицу каталога: определяет колонки по
// распознаваемым именам и достраивает идентичность каждой строки.
// Явные колонки color/talla имеют приоритет над разбором референса;
// парсер используется только как запасной источник. Отсутствие колонок
// ean/codbarras или nombre — не ошибка, поля остаются пустыми.
func NormalizeCatalog(t *tabular.Table) ([]Entry, error) {
	if t == nil || t.RowCount() == 0 {
		return nil, tabular.NewFormatError("Archivo vacío", nil)
	}

	resolved := resolveColumns(t.Headers)

	refCol, ok := resolved[roleReference]
	if !ok {
		// Колонки "referencia" нет — референсом считается первая колонка
		refCol = t.Headers[0]
	}
	codeCol, hasCode := resolved[roleCode]
	colorCol, hasColor := resolved[roleColor]
	tallaCol, hasTalla := resolved[roleSize]
	nameCol, hasName := resolved[roleName]

	entries := make([]Entry, 0, t.RowCount())
	for _, row := range t.Rows {
		parsed := ParseRef(row[refCol])

		identity := Identity{Ref: parsed.Ref, Color: parsed.Color, Talla: parsed.Talla}
		if hasColor {
			identity.Color = trimmedNullString(row[colorCol])
		}
		if hasTalla {
			identity.Talla = trimmedNullString(row[tallaCol])
		}

		entry := Entry{Identity: identity, Row: row}
		if hasCode {
			entry.Code = trimmedNullString(row[codeCol])
		}
		if hasName {
			entry.Name = trimmedNullString(row[nameCol])
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// NormalizeRequest нормализует таблицу петиции. Первая колонка всегда
// считается наименованием товара; цвет и размер всегда выводятся парсером
// из наименования (петиции не несут отдельных колонок цвета/размера).
// Колонка количества выбирается позиционно (третья, при двух колонках —
// вторая), но колонка с именем "cantidad" перекрывает позиционный выбор.
func NormalizeRequest(t *tabular.Table) ([]RequestLine, error) {
	if t == nil || t.RowCount() == 0 {
		return nil, tabular.NewFormatError("Archivo vacío", nil)
	}

	labelCol := t.Headers[0]

	qtyCol := ""
	switch {
	case len(t.Headers) >= 3:
		qtyCol = t.Headers[2]
	case len(t.Headers) == 2:
		qtyCol = t.Headers[1]
	}
	if explicit, ok := resolveColumns(t.Headers)[roleQuantity]; ok {
		qtyCol = explicit
	}

	lines := make([]RequestLine, 0, t.RowCount())
	for _, row := range t.Rows {
		line := RequestLine{Identity: ParseRef(row[labelCol]), Row: row}
		if qtyCol != "" {
			line.Qty = parseQuantity(row[qtyCol])
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// parseQuantity разбирает значение ячейки количества. Excel-выгрузки иногда
// форматируют целые как "5.0", поэтому предусмотрен запасной разбор float.
// Неразборчивое или пустое значение — отсутствующее количество, не ошибка.
func parseQuantity(cell string) sql.NullInt64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return sql.NullInt64{}
	}
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return sql.NullInt64{Int64: n, Valid: true}
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64); err == nil {
		return sql.NullInt64{Int64: int64(f), Valid: true}
	}
	return sql.NullInt64{}
}
