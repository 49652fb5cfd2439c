// Package automation imprime la vista previa del informe a PDF usando un
// Chrome sin cabeza controlado por rod.
package automation

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// PrintReportPDF abre la URL de vista previa del informe y guarda el PDF en
// saveDir. Devuelve la ruta escrita.
func PrintReportPDF(previewURL, saveDir, caseID string) (string, error) {
	if _, err := os.Stat(saveDir); os.IsNotExist(err) {
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return "", fmt.Errorf("no se pudo crear la carpeta destino: %v", err)
		}
	}

	// Leakless(false) para no disparar los antivirus corporativos.
	u, err := launcher.New().
		Headless(true).
		Leakless(false).
		Launch()
	if err != nil {
		return "", fmt.Errorf("no se pudo lanzar el navegador: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("no se pudo conectar al navegador: %v", err)
	}
	defer browser.Close()

	var page *rod.Page
	if err := rod.Try(func() {
		page = browser.MustPage(previewURL)
		page.Timeout(30 * time.Second).MustWaitStable()
	}); err != nil {
		return "", fmt.Errorf("no se pudo cargar la vista previa del informe: %v", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
	})
	if err != nil {
		return "", fmt.Errorf("no se pudo generar el PDF: %v", err)
	}

	if caseID == "" {
		caseID = "caso"
	}
	fileName := fmt.Sprintf("%s_informe_%s.pdf", caseID, time.Now().Format("20060102150405"))
	destPath := filepath.Join(saveDir, fileName)

	file, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("no se pudo crear el archivo PDF: %v", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return "", fmt.Errorf("no se pudo escribir el PDF: %v", err)
	}

	fmt.Printf("PDF generado: %s\n", destPath)
	return destPath, nil
}
