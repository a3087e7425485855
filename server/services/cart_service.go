package services

import (
	"almacenes/cart"
	"almacenes/catalog"
)

// CartItem строка корзины, разрешенная против каталога по умолчанию,
// в форме для выдачи наружу
type CartItem struct {
	Ref    *string `json:"ref"`
	Color  *string `json:"color"`
	Talla  *string `json:"talla"`
	EAN    *string `json:"ean"`
	Nombre *string `json:"nombre"`
	Qty    int64   `json:"qty"`
}

// CartView снимок корзины: партиции раздельно плюс счетчик различных
// идентичностей
type CartView struct {
	Manual     []CartItem `json:"manual"`
	Imported   []CartItem `json:"imported"`
	ImportID   string     `json:"import_id,omitempty"`
	TotalItems int        `json:"total_items"`
}

// CartService сервис корзины. Держит единственную долгоживущую корзину
// процесса и разрешает ее строки против каталога по умолчанию.
type CartService struct {
	ledger   *cart.Ledger
	catalogs *CatalogService
}

// NewCartService создает сервис корзины
func NewCartService(catalogs *CatalogService) *CartService {
	return &CartService{ledger: cart.NewLedger(), catalogs: catalogs}
}

// Add добавляет delta к ручному количеству; возвращает число различных
// идентичностей в корзине
func (s *CartService) Add(id catalog.Identity, delta int64) int {
	return s.ledger.Add(id, delta)
}

// Remove уменьшает ручное количество на delta
func (s *CartService) Remove(id catalog.Identity, delta int64) int {
	return s.ledger.Remove(id, delta)
}

// Update заменяет ручное количество точным значением
func (s *CartService) Update(id catalog.Identity, qty int64) int {
	return s.ledger.Set(id, qty)
}

// MergeImport замещает импортированную партицию найденными строками отчета
func (s *CartService) MergeImport(report *catalog.Report, importID string) int {
	return s.ledger.MergeImport(report, importID)
}

// Clear опустошает корзину
func (s *CartService) Clear() {
	s.ledger.Clear()
}

// View возвращает снимок корзины, разрешенный против каталога по умолчанию
func (s *CartService) View() CartView {
	snapshot := s.ledger.View()
	ix := s.catalogs.Default()

	return CartView{
		Manual:     resolveItems(snapshot.Manual, ix),
		Imported:   resolveItems(snapshot.Imported, ix),
		ImportID:   snapshot.ImportID,
		TotalItems: snapshot.TotalItems,
	}
}

// Checkout возвращает объединенный снимок оформления корзины
func (s *CartService) Checkout() []cart.CheckoutLine {
	return s.ledger.CheckoutSnapshot(s.catalogs.Default())
}

// resolveItems дополняет строки партиции кодом и наименованием из каталога.
// Идентичность, отсутствующая в каталоге, остается без кода — это не ошибка.
func resolveItems(lines []cart.Line, ix *catalog.Index) []CartItem {
	items := make([]CartItem, 0, len(lines))
	for _, line := range lines {
		item := CartItem{
			Ref:   catalog.StringOrNil(line.Identity.Ref),
			Color: catalog.StringOrNil(line.Identity.Color),
			Talla: catalog.StringOrNil(line.Identity.Talla),
			Qty:   line.Qty,
		}
		if ix != nil {
			if entry, ok := ix.Lookup(line.Identity); ok {
				item.EAN = catalog.StringOrNil(entry.Code)
				item.Nombre = catalog.StringOrNil(entry.Name)
			}
		}
		items = append(items, item)
	}
	return items
}
