package exporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"almacenes/cart"
)

// plantillaStartRow данные в шаблоне заказа начинаются со второй строки
// (первая занята шапкой шаблона)
const plantillaStartRow = 2

// FillPlantilla заполняет Excel-шаблон заказа строками оформления корзины.
// Раскладка фиксирована шаблоном склада: A=Fecha, B=Almacén de origen,
// C=Almacén de destino, D=Observaciones (референс заказа), E=EAN, F=Cantidad.
// Шаблон открывается с диска, заполненная книга возвращается как байты.
func FillPlantilla(templatePath string, lines []cart.CheckoutLine, meta Metadata) ([]byte, error) {
	wb, err := excelize.OpenFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open order template %s: %w", templatePath, err)
	}
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("order template %s has no sheets", templatePath)
	}

	for i, line := range lines {
		row := plantillaStartRow + i

		var code string
		if line.Entry != nil {
			code = line.Entry.Code.String
		}

		cells := []struct {
			col   string
			value interface{}
		}{
			{"A", meta.Fecha},
			{"B", meta.Origin},
			{"C", meta.Destination},
			{"D", meta.PedidoRef},
			{"E", code},
			{"F", line.Qty},
		}
		for _, cell := range cells {
			addr := fmt.Sprintf("%s%d", cell.col, row)
			if err := wb.SetCellValue(sheet, addr, cell.value); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", addr, err)
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode filled template: %w", err)
	}
	return buf.Bytes(), nil
}
