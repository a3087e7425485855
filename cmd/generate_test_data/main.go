package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"
)

// Генератор тестовых файлов: каталог XLSX и петиция CSV для ручной
// проверки загрузки и подбора.

var colores = []string{"NEGRO", "BLANCO", "ROJO", "AZUL", "VERDE", "GRIS"}
var tallas = []string{"XS", "S", "M", "L", "XL", "36", "38", "40", "42"}

type article struct {
	ref    string
	color  string
	talla  string
	ean    string
	nombre string
}

func main() {
	gofakeit.Seed(42)

	outDir := "testdata_generated"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	articles := generateArticles(500)

	catalogPath := filepath.Join(outDir, "catalogue.xlsx")
	if err := writeCatalog(catalogPath, articles); err != nil {
		log.Fatalf("write catalog: %v", err)
	}
	fmt.Printf("Каталог: %s (%d строк)\n", catalogPath, len(articles))

	requestPath := filepath.Join(outDir, "peticion.csv")
	rows, err := writeRequest(requestPath, articles)
	if err != nil {
		log.Fatalf("write request: %v", err)
	}
	fmt.Printf("Петиция: %s (%d строк)\n", requestPath, rows)
}

func generateArticles(n int) []article {
	articles := make([]article, 0, n)
	for i := 0; i < n; i++ {
		ref := fmt.Sprintf("REF%04d", i+1)
		articles = append(articles, article{
			ref:    ref,
			color:  colores[gofakeit.Number(0, len(colores)-1)],
			talla:  tallas[gofakeit.Number(0, len(tallas)-1)],
			ean:    gofakeit.DigitN(13),
			nombre: strings.ToUpper(gofakeit.ProductName()),
		})
	}
	return articles
}

func writeCatalog(path string, articles []article) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Referencia", "Color", "Talla", "EAN", "Nombre"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for r, a := range articles {
		values := []string{a.ref, a.color, a.talla, a.ean, a.nombre}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f.SaveAs(path)
}

// writeRequest пишет петицию в формате «этикетка;;количество», где часть
// строк ссылается на несуществующие артикулы.
func writeRequest(path string, articles []article) (int, error) {
	var b strings.Builder
	b.WriteString("Articulo;Descripcion;Cantidad\n")

	rows := 0
	for i := 0; i < 60; i++ {
		var label string
		if i%5 == 4 {
			label = fmt.Sprintf("[NOEXISTE%02d] (NEGRO, M)", i)
		} else {
			a := articles[gofakeit.Number(0, len(articles)-1)]
			label = fmt.Sprintf("[%s] (%s, %s)", a.ref, a.color, a.talla)
		}
		fmt.Fprintf(&b, "%s;%s;%d\n", label, gofakeit.Word(), gofakeit.Number(1, 12))
		rows++
	}

	return rows, os.WriteFile(path, []byte(b.String()), 0644)
}
