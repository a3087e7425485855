// Package cart реализует корзину склада — identity-keyed реестр количеств
// с раздельными партициями ручного ввода и импорта из сопоставления продаж.
package cart

import (
	"sync"

	"almacenes/catalog"
)

// Line строка корзины: идентичность товара и количество
type Line struct {
	Identity catalog.Identity
	Qty      int64
}

// Snapshot снимок корзины для выдачи наружу. Партиции отдаются раздельно,
// TotalItems — число различных идентичностей по объединению партиций
// (не сумма количеств): по нему вызывающий решает, готова ли корзина
// к оформлению.
type Snapshot struct {
	Manual     []Line
	Imported   []Line
	ImportID   string
	TotalItems int
}

// CheckoutLine строка оформления: объединенные партиции, разрешенные
// против каталога
type CheckoutLine struct {
	Identity catalog.Identity
	Qty      int64
	Entry    *catalog.Entry
	Found    bool
}

// partition одна партиция корзины с сохранением порядка добавления
type partition struct {
	qty   map[catalog.Identity]int64
	order []catalog.Identity
}

func newPartition() *partition {
	return &partition{qty: make(map[catalog.Identity]int64)}
}

// set выставляет количество; значение <= 0 удаляет запись полностью —
// нулевые и отрицательные количества в корзине не хранятся
func (p *partition) set(id catalog.Identity, qty int64) {
	_, exists := p.qty[id]
	if qty <= 0 {
		if exists {
			delete(p.qty, id)
			p.dropOrder(id)
		}
		return
	}
	if !exists {
		p.order = append(p.order, id)
	}
	p.qty[id] = qty
}

func (p *partition) add(id catalog.Identity, delta int64) {
	p.set(id, p.qty[id]+delta)
}

func (p *partition) dropOrder(id catalog.Identity) {
	for i, existing := range p.order {
		if existing == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			return
		}
	}
}

func (p *partition) lines() []Line {
	lines := make([]Line, 0, len(p.order))
	for _, id := range p.order {
		lines = append(lines, Line{Identity: id, Qty: p.qty[id]})
	}
	return lines
}

// Ledger корзина. Единственная долгоживущая изменяемая структура системы,
// поэтому все операции защищены общим мьютексом: достаточно атомарности
// read-modify-write по одной идентичности, порядок между разными
// идентичностями не важен.
type Ledger struct {
	mu       sync.Mutex
	manual   *partition
	imported *partition
	importID string
}

// NewLedger создает пустую корзину
func NewLedger() *Ledger {
	return &Ledger{manual: newPartition(), imported: newPartition()}
}

// Add увеличивает ручное количество идентичности на delta (delta может быть
// отрицательной). Итог <= 0 удаляет запись. Возвращает число различных
// идентичностей в корзине.
func (l *Ledger) Add(id catalog.Identity, delta int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.manual.add(id, delta)
	return l.totalItemsLocked()
}

// Remove уменьшает ручное количество на delta; эквивалентно Add(id, -delta)
func (l *Ledger) Remove(id catalog.Identity, delta int64) int {
	return l.Add(id, -delta)
}

// Set заменяет ручное количество точным значением; <= 0 удаляет запись
func (l *Ledger) Set(id catalog.Identity, qty int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.manual.set(id, qty)
	return l.totalItemsLocked()
}

// MergeImport замещает импортированную партицию найденными строками отчета
// сопоставления. Одновременно хранится ровно одна импортированная партия:
// новый импорт полностью вытесняет предыдущий, ручная партиция не
// затрагивается. Ненайденные строки в корзину не попадают — они остаются
// на исходном отчете для экспорта. Количество для каждой идентичности
// выставляется равным запрошенному в строке; строка без количества
// трактуется как одна единица.
func (l *Ledger) MergeImport(report *catalog.Report, importID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.imported = newPartition()
	l.importID = importID

	for _, outcome := range report.Outcomes {
		if !outcome.Found {
			continue
		}
		qty := int64(1)
		if outcome.Line.Qty.Valid {
			qty = outcome.Line.Qty.Int64
		}
		l.imported.set(outcome.Line.Identity, qty)
	}

	return l.totalItemsLocked()
}

// View возвращает снимок обеих партиций
func (l *Ledger) View() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		Manual:     l.manual.lines(),
		Imported:   l.imported.lines(),
		ImportID:   l.importID,
		TotalItems: l.totalItemsLocked(),
	}
}

// Clear опустошает обе партиции
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.manual = newPartition()
	l.imported = newPartition()
	l.importID = ""
}

// CheckoutSnapshot объединяет партиции по идентичности (совпадающие
// идентичности суммируются в одну строку), разрешает каждую против
// каталога и помечает estado по наличию кода — тот же критерий found,
// что у сопоставления. Порядок детерминирован: ручная партиция в порядке
// добавления, затем строки, присутствующие только в импорте.
func (l *Ledger) CheckoutSnapshot(ix *catalog.Index) []CheckoutLine {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := make([]CheckoutLine, 0, len(l.manual.order)+len(l.imported.order))

	appendLine := func(id catalog.Identity, qty int64) {
		line := CheckoutLine{Identity: id, Qty: qty}
		if ix != nil {
			if entry, ok := ix.Lookup(id); ok {
				line.Entry = entry
				line.Found = entry.Code.Valid
			}
		}
		lines = append(lines, line)
	}

	for _, id := range l.manual.order {
		appendLine(id, l.manual.qty[id]+l.imported.qty[id])
	}
	for _, id := range l.imported.order {
		if _, inManual := l.manual.qty[id]; inManual {
			continue
		}
		appendLine(id, l.imported.qty[id])
	}

	return lines
}

// totalItemsLocked число различных идентичностей по объединению партиций.
// Вызывается только под мьютексом.
func (l *Ledger) totalItemsLocked() int {
	total := len(l.manual.qty)
	for id := range l.imported.qty {
		if _, inManual := l.manual.qty[id]; !inManual {
			total++
		}
	}
	return total
}
