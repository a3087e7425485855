// Package exporting отвечает за выгрузку отчетов сопоставления и корзины
// в скачиваемые форматы (CSV и XLSX). Движок определяет набор колонок,
// кодирование — забота этого пакета.
package exporting

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"almacenes/cart"
	"almacenes/catalog"
)

// Format формат экспорта
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	estadoFound    = "encontrado"
	estadoNotFound = "no_encontrado"
)

// ContentType возвращает MIME-тип формата
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// ParseFormat разбирает строку формата из параметра запроса
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX, "":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("formato no soportado (csv|xlsx): %q", s)
	}
}

// matchHeaders набор колонок выгрузки отчета сопоставления
var matchHeaders = []string{"Ref", "Color", "Talla", "EAN", "Nombre", "Cantidad", "estado"}

// MatchReportRows превращает отчет сопоставления в плоские строки для
// выгрузки. При onlyMissing=true выгружается только ненайденное
// подмножество, без повторного сопоставления.
func MatchReportRows(report *catalog.Report, onlyMissing bool) ([]string, [][]string) {
	outcomes := report.Outcomes
	if onlyMissing {
		outcomes = report.Missing()
	}

	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		estado := estadoNotFound
		var code, name string
		if outcome.Entry != nil {
			code = outcome.Entry.Code.String
			name = outcome.Entry.Name.String
		}
		if outcome.Found {
			estado = estadoFound
		}
		rows = append(rows, []string{
			outcome.Line.Identity.Ref.String,
			outcome.Line.Identity.Color.String,
			outcome.Line.Identity.Talla.String,
			code,
			name,
			qtyString(outcome.Line.Qty.Int64, outcome.Line.Qty.Valid),
			estado,
		})
	}

	return matchHeaders, rows
}

// Metadata метаданные оформления заказа, попадающие в каждую строку выгрузки
type Metadata struct {
	Origin      string
	Destination string
	Fecha       string
	PedidoRef   string
}

var checkoutHeaders = []string{"Origen", "Destino", "Fecha", "Pedido", "Ref", "Color", "Talla", "EAN", "Cantidad", "estado"}

// CheckoutRows превращает снимок оформления корзины в плоские строки
func CheckoutRows(lines []cart.CheckoutLine, meta Metadata) ([]string, [][]string) {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		estado := estadoNotFound
		var code string
		if line.Entry != nil {
			code = line.Entry.Code.String
		}
		if line.Found {
			estado = estadoFound
		}
		rows = append(rows, []string{
			meta.Origin,
			meta.Destination,
			meta.Fecha,
			meta.PedidoRef,
			line.Identity.Ref.String,
			line.Identity.Color.String,
			line.Identity.Talla.String,
			code,
			strconv.FormatInt(line.Qty, 10),
			estado,
		})
	}
	return checkoutHeaders, rows
}

// WriteCSV кодирует заголовки и строки в CSV
func WriteCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX кодирует заголовки и строки в книгу Excel с одним листом
func WriteXLSX(headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell address: %w", err)
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Write кодирует таблицу в запрошенный формат
func Write(format Format, headers []string, rows [][]string) ([]byte, error) {
	if format == FormatCSV {
		return WriteCSV(headers, rows)
	}
	return WriteXLSX(headers, rows)
}

func qtyString(qty int64, valid bool) string {
	if !valid {
		return ""
	}
	return strconv.FormatInt(qty, 10)
}
