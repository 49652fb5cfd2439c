// Package docio implementa el contrato mínimo de escritura de documentos Word
// que asumen los renderizadores: crear documento, agregar títulos, párrafos,
// runs y tablas, y guardar a una ruta. Escribe el paquete OOXML directamente
// (zip + WordprocessingML) para no depender de Word instalado.
package docio

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

type block interface {
	writeXML(sb *strings.Builder)
}

// Document acumula bloques en memoria y los serializa al guardar.
type Document struct {
	blocks []block
}

func NewDocument() *Document {
	return &Document{}
}

// Paragraph es un párrafo con estilo opcional y una secuencia de runs.
type Paragraph struct {
	style string
	runs  []run
}

type run struct {
	text string
	bold bool
	mono bool
}

// AddHeading agrega un párrafo con estilo de título del nivel indicado (1..3).
func (d *Document) AddHeading(text string, level int) {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	p := &Paragraph{style: fmt.Sprintf("Heading%d", level)}
	p.AddRun(text, false)
	d.blocks = append(d.blocks, p)
}

// AddParagraph agrega un párrafo vacío con el estilo pedido y lo devuelve
// para que el llamador escriba sus runs.
func (d *Document) AddParagraph(style string) *Paragraph {
	p := &Paragraph{style: style}
	d.blocks = append(d.blocks, p)
	return p
}

// AddParagraphText es la forma corta para párrafos de un solo run plano.
func (d *Document) AddParagraphText(text string) {
	d.AddParagraph("").AddRun(text, false)
}

func (p *Paragraph) AddRun(text string, bold bool) {
	p.runs = append(p.runs, run{text: text, bold: bold, mono: p.style == "Monospace"})
}

func (p *Paragraph) writeXML(sb *strings.Builder) {
	if len(p.runs) == 0 {
		sb.WriteString("<w:p/>")
		return
	}
	sb.WriteString("<w:p>")
	switch p.style {
	case "", "Monospace":
	case "List Bullet":
		sb.WriteString(`<w:pPr><w:pStyle w:val="ListBullet"/></w:pPr>`)
	default:
		sb.WriteString(`<w:pPr><w:pStyle w:val="` + xmlEscaper.Replace(p.style) + `"/></w:pPr>`)
	}
	for _, r := range p.runs {
		sb.WriteString("<w:r>")
		if r.bold || r.mono {
			sb.WriteString("<w:rPr>")
			if r.mono {
				sb.WriteString(`<w:rFonts w:ascii="Courier New" w:hAnsi="Courier New"/>`)
			}
			if r.bold {
				sb.WriteString("<w:b/>")
			}
			sb.WriteString("</w:rPr>")
		}
		// los saltos de línea dentro de un run se traducen a <w:br/>
		pieces := strings.Split(r.text, "\n")
		for i, piece := range pieces {
			if i > 0 {
				sb.WriteString("<w:br/>")
			}
			sb.WriteString(`<w:t xml:space="preserve">` + xmlEscaper.Replace(piece) + `</w:t>`)
		}
		sb.WriteString("</w:r>")
	}
	sb.WriteString("</w:p>")
}

// Table es una tabla rectangular simple con celdas de texto plano.
type Table struct {
	cols int
	rows [][]string
}

// AddTable agrega una tabla de rows × cols celdas vacías.
func (d *Document) AddTable(rows, cols int) *Table {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	t := &Table{cols: cols}
	for i := 0; i < rows; i++ {
		t.rows = append(t.rows, make([]string, cols))
	}
	d.blocks = append(d.blocks, t)
	return t
}

// AddRow agrega una fila vacía al final y devuelve su índice.
func (t *Table) AddRow() int {
	t.rows = append(t.rows, make([]string, t.cols))
	return len(t.rows) - 1
}

// SetCell escribe una celda; fuera de rango se ignora.
func (t *Table) SetCell(row, col int, text string) {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= t.cols {
		return
	}
	t.rows[row][col] = text
}

func (t *Table) writeXML(sb *strings.Builder) {
	sb.WriteString(`<w:tbl><w:tblPr><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4"/><w:bottom w:val="single" w:sz="4"/>` +
		`<w:left w:val="single" w:sz="4"/><w:right w:val="single" w:sz="4"/>` +
		`<w:insideH w:val="single" w:sz="4"/><w:insideV w:val="single" w:sz="4"/>` +
		`</w:tblBorders></w:tblPr><w:tblGrid>`)
	for i := 0; i < t.cols; i++ {
		sb.WriteString(`<w:gridCol w:w="2400"/>`)
	}
	sb.WriteString("</w:tblGrid>")
	for _, cells := range t.rows {
		sb.WriteString("<w:tr>")
		for _, cell := range cells {
			if cell == "" {
				sb.WriteString("<w:tc><w:p/></w:tc>")
				continue
			}
			sb.WriteString(`<w:tc><w:p><w:r><w:t xml:space="preserve">` +
				xmlEscaper.Replace(cell) + "</w:t></w:r></w:p></w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
}

// DocumentXML serializa el cuerpo completo de word/document.xml.
func (d *Document) DocumentXML() []byte {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<w:document xmlns:w="` + wordNS + `"><w:body>`)
	for _, b := range d.blocks {
		b.writeXML(&sb)
	}
	sb.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr>`)
	sb.WriteString("</w:body></w:document>")
	return []byte(sb.String())
}

// Save escribe el paquete docx completo en path.
func (d *Document) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("no se pudo crear la carpeta destino: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("no se pudo crear %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	bundle := zip.NewWriter(file)
	for name, payload := range staticParts {
		part, err := bundle.Create(name)
		if err != nil {
			return fmt.Errorf("no se pudo escribir la parte %s: %w", name, err)
		}
		if _, err := part.Write([]byte(payload)); err != nil {
			return fmt.Errorf("no se pudo escribir la parte %s: %w", name, err)
		}
	}
	part, err := bundle.Create("word/document.xml")
	if err != nil {
		return fmt.Errorf("no se pudo escribir word/document.xml: %w", err)
	}
	if _, err := part.Write(d.DocumentXML()); err != nil {
		return fmt.Errorf("no se pudo escribir word/document.xml: %w", err)
	}
	if err := bundle.Close(); err != nil {
		return fmt.Errorf("no se pudo cerrar el paquete docx: %w", err)
	}
	return file.Close()
}
