package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// ReadTable читает табличный файл, выбирая парсер по расширению имени.
// Поддерживаются .csv, .xlsx и .xls. Неподдерживаемое расширение — FormatError.
func ReadTable(filename string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(filename, r)
	case ".xlsx", ".xls":
		return ReadXLSX(filename, r)
	default:
		return nil, NewFormatError("Formato no soportado", fmt.Errorf("unexpected file extension: %s", filename))
	}
}

// ReadCSV читает CSV-файл в Table. Файлы складских выгрузок часто приходят
// в Windows-1252 (испанские знаки в наименованиях), поэтому при невалидном
// UTF-8 содержимое перекодируется через charmap.
func ReadCSV(filename string, r io.Reader) (*Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, NewFormatError("No se pudo leer el archivo", err)
	}

	if !utf8.Valid(content) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(content)
		if err != nil {
			return nil, NewFormatError("Formato no soportado", fmt.Errorf("cannot decode file encoding: %w", err))
		}
		content = decoded
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, NewFormatError("Formato no soportado", fmt.Errorf("failed to read CSV: %w", err))
	}

	return buildTable(allRows, filename)
}

// detectDelimiter выбирает разделитель по первой строке: точка с запятой
// используется, когда она встречается, а запятая — нет (выгрузки из Excel
// с испанской локалью используют ';').
func detectDelimiter(content []byte) rune {
	line := content
	if idx := bytes.IndexByte(content, '\n'); idx >= 0 {
		line = content[:idx]
	}
	if bytes.ContainsRune(line, ';') && !bytes.ContainsRune(line, ',') {
		return ';'
	}
	return ','
}

// ReadXLSX читает первый лист Excel-файла в Table
func ReadXLSX(filename string, r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewFormatError("Formato no soportado", fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, NewFormatError("Archivo vacío", fmt.Errorf("no sheets found in Excel file"))
	}

	allRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, NewFormatError("Formato no soportado", fmt.Errorf("failed to get rows: %w", err))
	}

	return buildTable(allRows, filename)
}

// ReadTableFile читает табличный файл с диска (стартовая загрузка каталога)
func ReadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewFormatError("No se pudo leer el archivo", err)
	}
	defer f.Close()

	return ReadTable(path, f)
}
