package report

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"fic/automation"
	"fic/casedata"
	"fic/config"
	"fic/database"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// MarkdownHandler devuelve el informe en Markdown para la vista previa en vivo.
func MarkdownHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSONError(w, "El payload del caso no es JSON válido.", http.StatusBadRequest)
			return
		}
		cd := casedata.FromPayload(payload)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"markdown": BuildMarkdown(cd),
			"filename": BuildReportFilename(cd),
		})
	}
}

// PreviewPageHandler sirve una página HTML imprimible del informe de una
// versión guardada. Es la URL que carga el navegador sin cabeza para el PDF.
func PreviewPageHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		versionID := strings.TrimPrefix(r.URL.Path, "/report/preview/")
		if versionID == "" {
			http.Error(w, "Debe indicar el id de la versión.", http.StatusBadRequest)
			return
		}
		version, err := database.GetCaseVersion(db, versionID)
		if err != nil {
			log.Printf("Error loading version %s for preview: %v", versionID, err)
			http.Error(w, "No se encontró la versión solicitada.", http.StatusNotFound)
			return
		}
		var payload map[string]any
		if err := json.Unmarshal([]byte(version.Payload), &payload); err != nil {
			http.Error(w, "La versión guardada está corrupta.", http.StatusInternalServerError)
			return
		}
		cd := casedata.FromPayload(payload)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, renderPreviewHTML(cd))
	}
}

// renderPreviewHTML produce una versión HTML mínima del informe: suficiente
// para que la impresión a PDF respete títulos, tablas y saltos de línea.
func renderPreviewHTML(cd *casedata.CaseData) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
	b.WriteString("<style>body{font-family:Arial,sans-serif;margin:2.5cm;font-size:11pt}")
	b.WriteString("h1,h2,h3{color:#00377b}table{border-collapse:collapse;width:100%}")
	b.WriteString("td,th{border:1px solid #999;padding:4px;font-size:9pt}</style>")
	b.WriteString("<title>" + html.EscapeString(BuildReportFilename(cd)) + "</title></head><body>")

	inTable := false
	flushTable := func() {
		if inTable {
			b.WriteString("</table>")
			inTable = false
		}
	}
	for _, line := range strings.Split(BuildMarkdown(cd), "\n") {
		switch {
		case strings.HasPrefix(line, "|---"):
			// separador de tabla Markdown, sin equivalente HTML
		case strings.HasPrefix(line, "|"):
			if !inTable {
				b.WriteString("<table>")
				inTable = true
			}
			b.WriteString("<tr>")
			cells := strings.Split(strings.Trim(line, "|"), "|")
			for _, cell := range cells {
				value := strings.ReplaceAll(strings.TrimSpace(cell), "\\|", "|")
				b.WriteString("<td>" + html.EscapeString(value) + "</td>")
			}
			b.WriteString("</tr>")
		case strings.HasPrefix(line, "### "):
			flushTable()
			b.WriteString("<h3>" + html.EscapeString(line[4:]) + "</h3>")
		case strings.HasPrefix(line, "## "):
			flushTable()
			b.WriteString("<h2>" + html.EscapeString(line[3:]) + "</h2>")
		case strings.HasPrefix(line, "# "):
			flushTable()
			b.WriteString("<h1>" + html.EscapeString(line[2:]) + "</h1>")
		case strings.TrimSpace(line) == "":
			flushTable()
		default:
			flushTable()
			b.WriteString("<p>" + markdownInlineToHTML(line) + "</p>")
		}
	}
	flushTable()
	b.WriteString("</body></html>")
	return b.String()
}

// markdownInlineToHTML traduce los pares **...** a negrita y escapa el resto.
func markdownInlineToHTML(line string) string {
	parts := strings.Split(line, "**")
	var b strings.Builder
	for i, part := range parts {
		if i%2 == 1 && i < len(parts)-(len(parts)%2) {
			b.WriteString("<strong>" + html.EscapeString(part) + "</strong>")
		} else {
			b.WriteString(html.EscapeString(part))
		}
	}
	return b.String()
}

// PDFHandler imprime la vista previa de una versión guardada a PDF mediante
// el navegador sin cabeza y lo deja en la carpeta de exportación.
func PDFHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var request struct {
			VersionID string `json:"version_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.VersionID == "" {
			writeJSONError(w, "Debe indicar version_id.", http.StatusBadRequest)
			return
		}
		version, err := database.GetCaseVersion(db, request.VersionID)
		if err != nil {
			writeJSONError(w, "No se encontró la versión solicitada.", http.StatusNotFound)
			return
		}

		cfg := config.GetConfig()
		previewURL := "http://localhost:8080/report/preview/" + request.VersionID
		pdfPath, err := automation.PrintReportPDF(previewURL, cfg.ExportsFolderPath, version.CaseID)
		if err != nil {
			log.Printf("Error printing report PDF: %v", err)
			writeJSONError(w, "No se pudo generar el PDF: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "PDF generado",
			"path":    pdfPath,
		})
	}
}
