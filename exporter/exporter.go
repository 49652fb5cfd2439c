// Package exporter orquesta el guardado completo de un caso: CSVs por
// entidad, llave técnica, eventos, versión JSON, informes Markdown y Word,
// anexos históricos y espejo en la unidad externa. Los fallos del espejo y
// de los históricos degradan a WARN; el guardado principal no se interrumpe.
package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"fic/casedata"
	"fic/flatten"
	"fic/history"
	"fic/report"
)

// Encabezados de los CSV por entidad. El orden es parte del contrato con los
// consumidores aguas abajo.
var (
	casosHeader = []string{"id_caso", "tipo_informe", "categoria1", "categoria2", "modalidad", "canal", "proceso"}
	clientesHeader = []string{"id_cliente", "id_caso", "tipo_id", "flag", "telefonos", "correos", "direcciones", "accionado"}
	colaboradoresHeader = []string{"id_colaborador", "id_caso", "flag", "division", "area", "servicio", "puesto", "nombre_agencia", "codigo_agencia", "tipo_falta", "tipo_sancion"}
	productosHeader = []string{"id_producto", "id_caso", "id_cliente", "categoria1", "categoria2", "modalidad", "canal", "proceso", "fecha_ocurrencia", "fecha_descubrimiento", "monto_investigado", "tipo_moneda", "monto_perdida_fraude", "monto_falla_procesos", "monto_contingencia", "monto_recuperado", "monto_pago_deuda", "tipo_producto"}
	reclamosHeader = []string{"id_reclamo", "id_caso", "id_producto", "nombre_analitica", "codigo_analitica"}
	involucramientoHeader = []string{"id_producto", "id_caso", "id_colaborador", "monto_asignado"}
	riesgosHeader = []string{"id_riesgo", "id_caso", "lider", "criticidad", "exposicion_residual", "planes_accion"}
	normasHeader = []string{"id_norma", "id_caso", "descripcion", "fecha_vigencia"}
	analisisHeader = []string{"id_caso", "antecedentes", "modus_operandi", "hallazgos", "descargos", "conclusiones", "recomendaciones"}
)

// Exporter ejecuta los guardados. History puede ser nil para omitir los
// anexos históricos (solo en pruebas).
type Exporter struct {
	ExportsDir  string
	ExternalDir string
	Placeholder string
	Encoding    string
	History     *history.Log
	Now         func() time.Time
}

// Result lista lo producido por un guardado.
type Result struct {
	Files []string
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Exporter) placeholder() string {
	if e.Placeholder == "" {
		return flatten.DefaultEventosPlaceholder
	}
	return e.Placeholder
}

// csvWriter abre un archivo CSV con la codificación configurada.
func (e *Exporter) csvWriter(path string) (*csv.Writer, io.Closer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("no se pudo crear %s: %w", filepath.Base(path), err)
	}
	var out io.Writer = file
	if strings.EqualFold(e.Encoding, "windows-1252") || strings.EqualFold(e.Encoding, "cp1252") {
		out = transform.NewWriter(file, charmap.Windows1252.NewEncoder())
	}
	return csv.NewWriter(out), file, nil
}

func (e *Exporter) writeCSV(path string, header []string, rows []map[string]string, sanitize bool) error {
	writer, closer, err := e.csvWriter(path)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("no se pudo escribir %s: %w", filepath.Base(path), err)
	}
	sanitizer := history.Log{Placeholder: e.placeholder()}
	for _, row := range rows {
		record := make([]string, 0, len(header))
		for _, field := range header {
			value := row[field]
			if sanitize {
				value = sanitizer.SanitizeValue(value)
			}
			record = append(record, value)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("no se pudo escribir %s: %w", filepath.Base(path), err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("no se pudo volcar %s: %w", filepath.Base(path), err)
	}
	return nil
}

// entityRows normaliza las colecciones a filas con id_caso inyectado.
func entityRows(cd *casedata.CaseData) map[string][]map[string]string {
	caseID := cd.Caso.IDCaso
	rows := map[string][]map[string]string{}

	rows["casos"] = []map[string]string{{
		"id_caso":      caseID,
		"tipo_informe": cd.Caso.TipoInforme,
		"categoria1":   cd.Caso.Categoria1,
		"categoria2":   cd.Caso.Categoria2,
		"modalidad":    cd.Caso.Modalidad,
		"canal":        cd.Caso.Canal,
		"proceso":      cd.Caso.Proceso,
	}}
	for _, client := range cd.Clientes {
		rows["clientes"] = append(rows["clientes"], map[string]string{
			"id_cliente": client.IDCliente, "id_caso": caseID, "tipo_id": client.TipoID,
			"flag": client.Flag, "telefonos": client.Telefonos, "correos": client.Correos,
			"direcciones": client.Direcciones, "accionado": client.Accionado,
		})
	}
	for _, col := range cd.Colaboradores {
		rows["colaboradores"] = append(rows["colaboradores"], map[string]string{
			"id_colaborador": col.IDColaborador, "id_caso": caseID, "flag": col.Flag,
			"division": col.Division, "area": col.Area, "servicio": col.Servicio,
			"puesto": col.Puesto, "nombre_agencia": col.NombreAgencia,
			"codigo_agencia": col.CodigoAgencia, "tipo_falta": col.TipoFalta,
			"tipo_sancion": col.TipoSancion,
		})
	}
	for _, product := range cd.Productos {
		rows["productos"] = append(rows["productos"], map[string]string{
			"id_producto": product.IDProducto, "id_caso": caseID, "id_cliente": product.IDCliente,
			"categoria1": product.Categoria1, "categoria2": product.Categoria2,
			"modalidad": product.Modalidad, "canal": product.Canal, "proceso": product.Proceso,
			"fecha_ocurrencia": product.FechaOcurrencia, "fecha_descubrimiento": product.FechaDescubrimiento,
			"monto_investigado": product.MontoInvestigado, "tipo_moneda": product.TipoMoneda,
			"monto_perdida_fraude": product.MontoPerdidaFraude, "monto_falla_procesos": product.MontoFallaProcesos,
			"monto_contingencia": product.MontoContingencia, "monto_recuperado": product.MontoRecuperado,
			"monto_pago_deuda": product.MontoPagoDeuda, "tipo_producto": product.TipoProducto,
		})
	}
	for _, claim := range cd.Reclamos {
		rows["producto_reclamo"] = append(rows["producto_reclamo"], map[string]string{
			"id_reclamo": claim.IDReclamo, "id_caso": caseID, "id_producto": claim.IDProducto,
			"nombre_analitica": claim.NombreAnalitica, "codigo_analitica": claim.CodigoAnalitica,
		})
	}
	for _, inv := range cd.Involucramientos {
		rows["involucramiento"] = append(rows["involucramiento"], map[string]string{
			"id_producto": inv.IDProducto, "id_caso": caseID,
			"id_colaborador": inv.IDColaborador, "monto_asignado": inv.MontoAsignado,
		})
	}
	for _, risk := range cd.Riesgos {
		rows["detalles_riesgo"] = append(rows["detalles_riesgo"], map[string]string{
			"id_riesgo": risk.IDRiesgo, "id_caso": caseID, "lider": risk.Lider,
			"criticidad": risk.Criticidad, "exposicion_residual": risk.ExposicionResidual,
			"planes_accion": risk.PlanesAccion,
		})
	}
	for _, norm := range cd.Normas {
		rows["detalles_norma"] = append(rows["detalles_norma"], map[string]string{
			"id_norma": norm.IDNorma, "id_caso": caseID,
			"descripcion": norm.Descripcion, "fecha_vigencia": norm.FechaVigencia,
		})
	}
	analisis := map[string]string{"id_caso": caseID}
	for _, field := range analisisHeader[1:] {
		analisis[field] = cd.AnalisisTexto(field)
	}
	rows["analisis"] = []map[string]string{analisis}

	return rows
}

// PerformSaveExports guarda todos los artefactos del caso y devuelve las
// rutas creadas.
func (e *Exporter) PerformSaveExports(cd *casedata.CaseData) (*Result, error) {
	if err := os.MkdirAll(e.ExportsDir, 0755); err != nil {
		return nil, fmt.Errorf("no se pudo crear la carpeta de exportación: %w", err)
	}

	caseID := cd.Caso.IDCaso
	if caseID == "" {
		caseID = "caso"
	}
	result := &Result{}
	timestamp := e.now()

	path := func(name string) string {
		return filepath.Join(e.ExportsDir, caseID+"_"+name)
	}

	rows := entityRows(cd)
	entityOrder := []struct {
		table  string
		file   string
		header []string
	}{
		{"casos", "casos.csv", casosHeader},
		{"clientes", "clientes.csv", clientesHeader},
		{"colaboradores", "colaboradores.csv", colaboradoresHeader},
		{"productos", "productos.csv", productosHeader},
		{"producto_reclamo", "producto_reclamo.csv", reclamosHeader},
		{"involucramiento", "involucramiento.csv", involucramientoHeader},
		{"detalles_riesgo", "detalles_riesgo.csv", riesgosHeader},
		{"detalles_norma", "detalles_norma.csv", normasHeader},
		{"analisis", "analisis.csv", analisisHeader},
	}
	for _, entity := range entityOrder {
		target := path(entity.file)
		if err := e.writeCSV(target, entity.header, rows[entity.table], false); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, target)
	}

	llaveRows, llaveHeader := flatten.BuildLlaveTecnicaRows(cd)
	llavePath := path("llave_tecnica.csv")
	if err := e.writeCSV(llavePath, llaveHeader, llaveRows, true); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, llavePath)

	eventRows, eventHeader := flatten.BuildEventosRows(cd, e.placeholder())
	eventosPath := path("eventos.csv")
	if err := e.writeCSV(eventosPath, eventHeader, eventRows, true); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, eventosPath)

	versionPath := path("version.json")
	payload, err := json.MarshalIndent(cd.AsDict(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("no se pudo serializar la versión del caso: %w", err)
	}
	if err := os.WriteFile(versionPath, payload, 0644); err != nil {
		return nil, fmt.Errorf("no se pudo escribir %s: %w", filepath.Base(versionPath), err)
	}
	result.Files = append(result.Files, versionPath)

	mdPath := path("informe.md")
	if err := os.WriteFile(mdPath, []byte(report.BuildMarkdown(cd)), 0644); err != nil {
		return nil, fmt.Errorf("no se pudo escribir el informe Markdown: %w", err)
	}
	result.Files = append(result.Files, mdPath)

	docxPath := path("informe.docx")
	if err := report.BuildWord(cd, docxPath); err != nil {
		return nil, fmt.Errorf("no se pudo escribir el informe Word: %w", err)
	}
	result.Files = append(result.Files, docxPath)

	e.appendHistory(cd, rows, llaveRows, llaveHeader, eventRows, eventHeader, timestamp)
	e.mirrorToExternalDrive(result.Files, caseID)

	return result, nil
}

// appendHistory registra los incrementos en los anexos h_*.csv. Los fallos
// no interrumpen el guardado principal.
func (e *Exporter) appendHistory(cd *casedata.CaseData, rows map[string][]map[string]string, llaveRows []map[string]string, llaveHeader []string, eventRows []map[string]string, eventHeader []string, timestamp time.Time) {
	if e.History == nil {
		return
	}
	caseID := cd.Caso.IDCaso
	appends := []struct {
		table  string
		rows   []map[string]string
		header []string
	}{
		{"clientes", rows["clientes"], clientesHeader},
		{"colaboradores", rows["colaboradores"], colaboradoresHeader},
		{"productos", rows["productos"], productosHeader},
		{"producto_reclamo", rows["producto_reclamo"], reclamosHeader},
		{"involucramiento", rows["involucramiento"], involucramientoHeader},
		{"detalles_riesgo", rows["detalles_riesgo"], riesgosHeader},
		{"detalles_norma", rows["detalles_norma"], normasHeader},
		{"llave_tecnica", llaveRows, llaveHeader},
		{"eventos", eventRows, eventHeader},
	}
	for _, entry := range appends {
		if _, err := e.History.Append(entry.table, entry.rows, entry.header, caseID, timestamp); err != nil {
			log.Printf("WARN: no se pudo actualizar el histórico %s: %v", entry.table, err)
		}
	}
}

// mirrorToExternalDrive copia los archivos generados a la carpeta del caso en
// la unidad externa. Cualquier fallo degrada a WARN.
func (e *Exporter) mirrorToExternalDrive(files []string, caseID string) {
	if e.ExternalDir == "" {
		return
	}
	caseFolder := filepath.Join(e.ExternalDir, caseID)
	if err := os.MkdirAll(caseFolder, 0755); err != nil {
		log.Printf("WARN: no se pudo crear la carpeta de respaldo %s: %v", caseFolder, err)
		return
	}
	for _, source := range files {
		if err := copyFile(source, filepath.Join(caseFolder, filepath.Base(source))); err != nil {
			log.Printf("WARN: no se pudo copiar %s al respaldo externo: %v", filepath.Base(source), err)
		}
	}
}

func copyFile(source, destination string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(destination)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
