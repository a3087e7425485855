package catalog

import (
	"database/sql"
	"regexp"
	"strings"
)

// Identity идентичность товара — тройка (референс, цвет, размер).
// Используется как ключ соединения и агрегации во всей системе.
// Поля сравнимы по значению, поэтому Identity можно использовать как ключ map.
// Отсутствующее значение (Valid=false) отличается от пустой строки.
type Identity struct {
	Ref   sql.NullString
	Color sql.NullString
	Talla sql.NullString
}

// IsEmpty возвращает true, если все три поля отсутствуют
func (id Identity) IsEmpty() bool {
	return !id.Ref.Valid && !id.Color.Valid && !id.Talla.Valid
}

// NewIdentity создает Identity из указателей (nil = отсутствует).
// Используется на границе API, где поля приходят как *string.
func NewIdentity(ref, color, talla *string) Identity {
	return Identity{
		Ref:   toNullString(ref),
		Color: toNullString(color),
		Talla: toNullString(talla),
	}
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringOrNil возвращает значение как *string (nil = отсутствует)
func StringOrNil(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

var (
	refPattern   = regexp.MustCompile(`\[([^\]]+)\]`)
	parenPattern = regexp.MustCompile(`\(([^)]*)\)`)
)

// ParseRef разбирает строку наименования товара вида "[REF001](Rojo, M)" в Identity.
// Референс — содержимое первых квадратных скобок, цвет и размер — содержимое
// первых круглых скобок (размер — часть после первой запятой).
// Функция тотальна: любая строка дает корректный результат, пустая строка
// дает полностью отсутствующую идентичность. Ошибок не возвращает.
func ParseRef(label string) Identity {
	var id Identity

	if label == "" {
		return id
	}

	if m := refPattern.FindStringSubmatch(label); m != nil {
		id.Ref = trimmedNullString(m[1])
	}

	m := parenPattern.FindStringSubmatch(label)
	if m == nil {
		return id
	}

	inside := strings.TrimSpace(m[1])
	if before, after, found := strings.Cut(inside, ","); found {
		id.Color = trimmedNullString(before)
		id.Talla = trimmedNullString(after)
	} else {
		id.Color = trimmedNullString(inside)
	}

	return id
}

// trimmedNullString обрезает пробелы; пустой результат считается отсутствующим
func trimmedNullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
