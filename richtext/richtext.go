// Package richtext convierte un campo narrativo (texto plano más anotaciones
// posicionales) en líneas lógicas con etiquetas de bloque e inline, y las
// renderiza a Markdown o a un documento estructurado. Las anotaciones
// malformadas se descartan en silencio: el texto del investigador siempre se
// conserva aunque el formato se pierda.
package richtext

import (
	"sort"
	"strconv"
	"strings"

	"fic/model"
)

// Etiquetas de bloque: aplican a toda línea que intersectan.
// La única etiqueta inline es "bold", recortada por línea.
const (
	TagHeader = "header"
	TagList   = "list"
	TagTable  = "table"
	TagBold   = "bold"
)

// TagRange es una anotación resuelta a offsets absolutos de carácter.
type TagRange struct {
	Tag   string
	Start int
	End   int
}

// Line es una línea física del texto con sus anotaciones ya clasificadas.
// InlineTags usa offsets locales a la línea.
type Line struct {
	Text       string
	BlockTags  map[string]bool
	InlineTags []TagRange
}

// ResolveIndex convierte un índice "línea.columna" del widget de captura
// (línea 1-based, columna 0-based) a un offset absoluto sobre text. La
// conversión está aislada aquí para poder cambiarla según el toolkit anfitrión.
func ResolveIndex(text, index string) (int, bool) {
	lineStr, colStr, found := strings.Cut(strings.TrimSpace(index), ".")
	if !found {
		return 0, false
	}
	lineNo, err := strconv.Atoi(lineStr)
	if err != nil || lineNo < 1 {
		return 0, false
	}
	col, err := strconv.Atoi(colStr)
	if err != nil || col < 0 {
		return 0, false
	}

	lines := strings.Split(text, "\n")
	if lineNo > len(lines) {
		return 0, false
	}
	offset := 0
	for i := 0; i < lineNo-1; i++ {
		offset += len(lines[i]) + 1
	}
	// El widget tolera columnas más allá del fin de línea; se recortan.
	if col > len(lines[lineNo-1]) {
		col = len(lines[lineNo-1])
	}
	return offset + col, true
}

// ResolveTags convierte las anotaciones de la entrada a offsets absolutos.
// Rangos invertidos, irresolubles o con etiqueta desconocida se descartan.
func ResolveTags(entry model.RichTextEntry) []TagRange {
	var resolved []TagRange
	for _, ref := range entry.Tags {
		switch ref.Tag {
		case TagHeader, TagList, TagTable, TagBold:
		default:
			continue
		}
		start, ok := ResolveIndex(entry.Text, ref.Start)
		if !ok {
			continue
		}
		end, ok := ResolveIndex(entry.Text, ref.End)
		if !ok {
			continue
		}
		if end <= start {
			continue
		}
		resolved = append(resolved, TagRange{Tag: ref.Tag, Start: start, End: end})
	}
	return resolved
}

// SplitLines parte la entrada en líneas físicas y reparte cada anotación
// entre las líneas que toca: las de bloque marcan la línea completa, las
// inline se recortan a la ventana local. Una anotación multilínea se registra
// por separado en cada línea; nunca se reconstruye como un solo tramo.
func SplitLines(entry model.RichTextEntry) []Line {
	tags := ResolveTags(entry)
	rawLines := strings.Split(entry.Text, "\n")

	lines := make([]Line, len(rawLines))
	lineStart := 0
	for i, text := range rawLines {
		lineEnd := lineStart + len(text)
		line := Line{Text: text, BlockTags: map[string]bool{}}

		for _, tag := range tags {
			if tag.Start >= lineEnd || tag.End <= lineStart {
				continue
			}
			if tag.Tag == TagBold {
				start := tag.Start - lineStart
				if start < 0 {
					start = 0
				}
				end := tag.End - lineStart
				if end > len(text) {
					end = len(text)
				}
				if end > start {
					line.InlineTags = append(line.InlineTags, TagRange{Tag: TagBold, Start: start, End: end})
				}
				continue
			}
			line.BlockTags[tag.Tag] = true
		}

		lines[i] = line
		lineStart = lineEnd + 1 // el terminador avanza el span pero no se guarda
	}
	return lines
}

// boldBoundaries devuelve las posiciones donde el barrido de profundidad
// cruza cero, es decir donde abrir o cerrar el formato en negrita. Los rangos
// solapados degradan con gracia: cada frontera emite exactamente un marcador.
func boldBoundaries(lineLen int, inline []TagRange) []int {
	deltas := make(map[int]int)
	for _, tag := range inline {
		deltas[tag.Start]++
		deltas[tag.End]--
	}
	positions := make([]int, 0, len(deltas))
	for pos := range deltas {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	var boundaries []int
	depth := 0
	for _, pos := range positions {
		before := depth
		depth += deltas[pos]
		if (before == 0) != (depth == 0) {
			if pos < 0 {
				pos = 0
			}
			if pos > lineLen {
				pos = lineLen
			}
			boundaries = append(boundaries, pos)
		}
	}
	return boundaries
}
