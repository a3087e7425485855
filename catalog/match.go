package catalog

// Outcome результат сопоставления одной строки петиции с каталогом.
// Found истинно только когда идентичность найдена в индексе И запись
// каталога несет код (EAN): идентичность без кода бесполезна для
// исполнения на складе и считается не найденной.
type Outcome struct {
	Line  RequestLine
	Entry *Entry
	Found bool
}

// Report неизменяемый снимок результата сопоставления. Создается один раз
// на вызов Match и хранится для последующего экспорта.
type Report struct {
	Outcomes []Outcome
	Total    int
	Found    int
	NotFound int
}

// Match сопоставляет строки петиции с индексом каталога в порядке входа.
// Чистая функция без побочных эффектов: повторный вызов на тех же входах
// дает идентичный отчет. Дубликаты в петиции не схлопываются — каждая
// строка сопоставляется независимо, поэтому Total равен числу строк,
// а Found + NotFound всегда равно Total.
func Match(ix *Index, lines []RequestLine) *Report {
	report := &Report{
		Outcomes: make([]Outcome, 0, len(lines)),
		Total:    len(lines),
	}

	for _, line := range lines {
		outcome := Outcome{Line: line}
		if entry, ok := ix.Lookup(line.Identity); ok {
			outcome.Entry = entry
			outcome.Found = entry.Code.Valid
		}
		if outcome.Found {
			report.Found++
		} else {
			report.NotFound++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report
}

// Missing возвращает подмножество не найденных строк без повторного
// сопоставления
func (r *Report) Missing() []Outcome {
	missing := make([]Outcome, 0, r.NotFound)
	for _, outcome := range r.Outcomes {
		if !outcome.Found {
			missing = append(missing, outcome)
		}
	}
	return missing
}
