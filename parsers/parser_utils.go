package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// SkipBOM descarta el BOM UTF-8 si el archivo lo trae (Excel lo agrega al
// exportar CSV).
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	isBOM := true
	for i, b := range bom {
		if peeked[i] != b {
			isBOM = false
			break
		}
	}
	if isBOM {
		br.Read(make([]byte, 3))
	}
	return br
}

// getColIndex mapea nombre de columna a índice y valida los requeridos.
func getColIndex(header []string, required []string) (map[string]int, error) {
	colIndex := make(map[string]int)
	for i, colName := range header {
		colIndex[strings.TrimSpace(colName)] = i
	}
	for _, req := range required {
		if _, ok := colIndex[req]; !ok {
			return nil, fmt.Errorf("falta el encabezado obligatorio: %s", req)
		}
	}
	return colIndex, nil
}
