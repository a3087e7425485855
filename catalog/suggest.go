package catalog

import (
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// Suggestion подсказка похожего товара каталога для ненайденной строки
type Suggestion struct {
	Ref    *string `json:"ref"`
	Nombre *string `json:"nombre"`
	Score  float64 `json:"score"`
}

// Suggest подбирает похожие товары каталога по пересечению стеммированных
// токенов запроса с токенами референса и наименования. Подсказки никогда
// не влияют на результат Match — это отдельный сервис для оператора,
// разбирающего ненайденные строки. Результаты отсортированы по убыванию
// оценки, при равенстве — в порядке первого вхождения в каталог.
func Suggest(ix *Index, query string, limit int) []Suggestion {
	queryTokens := stemTokens(query)
	if len(queryTokens) == 0 {
		return nil
	}

	type scored struct {
		suggestion Suggestion
		order      int
	}

	var results []scored
	seen := make(map[searchKey]bool)

	for i := range ix.entries {
		entry := &ix.entries[i]

		key := searchKey{ref: entry.Identity.Ref, name: entry.Name}
		if seen[key] {
			continue
		}
		seen[key] = true

		var text strings.Builder
		if entry.Identity.Ref.Valid {
			text.WriteString(entry.Identity.Ref.String)
			text.WriteByte(' ')
		}
		if entry.Name.Valid {
			text.WriteString(entry.Name.String)
		}

		score := overlapScore(queryTokens, stemTokens(text.String()))
		if score <= 0 {
			continue
		}

		results = append(results, scored{
			suggestion: Suggestion{
				Ref:    StringOrNil(entry.Identity.Ref),
				Nombre: StringOrNil(entry.Name),
				Score:  score,
			},
			order: i,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].suggestion.Score != results[j].suggestion.Score {
			return results[i].suggestion.Score > results[j].suggestion.Score
		}
		return results[i].order < results[j].order
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	suggestions := make([]Suggestion, len(results))
	for i, r := range results {
		suggestions[i] = r.suggestion
	}
	return suggestions
}

// stemTokens разбивает текст на токены по не-буквенно-цифровым символам
// и стеммирует каждый испанским стеммером. Стемминг не должен ломать
// подсказки на опечатках стеммера, поэтому ошибка стемминга оставляет
// токен как есть.
func stemTokens(text string) map[string]bool {
	tokens := make(map[string]bool)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, word := range words {
		if len(word) < 2 {
			continue
		}
		stemmed, err := snowball.Stem(word, "spanish", true)
		if err != nil || stemmed == "" {
			stemmed = word
		}
		tokens[stemmed] = true
	}
	return tokens
}

// overlapScore доля токенов запроса, найденных среди токенов кандидата
func overlapScore(query, candidate map[string]bool) float64 {
	if len(query) == 0 || len(candidate) == 0 {
		return 0
	}
	matched := 0
	for token := range query {
		if candidate[token] {
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}
