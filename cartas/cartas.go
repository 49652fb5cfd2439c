// Package cartas genera las cartas de inmediatez: asigna correlativos
// NNN-AAAA por año, produce un DOCX por colaborador y registra cada
// generación en el CSV local y en los históricos (local y espejo externo).
package cartas

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fic/casedata"
	"fic/docio"
	"fic/model"
	"fic/validators"
)

// Errores de negocio. El handler los traduce a mensajes para la interfaz.
var (
	ErrSinColaboradores  = errors.New("debes seleccionar al menos un colaborador para generar la carta")
	ErrCartaDuplicada    = errors.New("ya existe una carta para ese caso y matrícula")
	ErrCasoObligatorio   = errors.New("el número de caso es obligatorio para generar cartas")
	ErrMatriculaFaltante = errors.New("la matrícula del investigador es obligatoria para generar cartas")
	ErrGeneracionEnCurso = errors.New("hay otra generación de cartas en curso")
)

var csvFields = []string{
	"numero_caso",
	"fecha_generacion",
	"mes",
	"investigador_principal",
	"matricula_investigador",
	"matricula_team_member",
	"Tipo",
	"codigo_agencia",
	"agencia",
	"Numero_de_Carta",
	"Tipo_entrevista",
}

var historyFields = []string{
	"id_carta",
	"matricula_team_member",
	"nombres_team_member",
	"apellidos_team_member",
	"fecha_creacion",
	"numero_caso",
	"matricula_investigador",
	"hostname",
}

// Mapeo del esquema histórico nuevo al registro interno.
var historyFieldMap = map[string]string{
	"id_carta":              "Numero_de_Carta",
	"matricula_team_member": "matricula_team_member",
	"numero_caso":           "numero_caso",
}

var historyKeys = []string{"numero_caso", "matricula_team_member", "Numero_de_Carta"}

// Párrafos por defecto de la plantilla; los tokens {{CLAVE}} se sustituyen
// al generar. Si existe plantilla_carta_inmediatez.txt en la carpeta de
// cartas, sus líneas reemplazan este cuerpo.
var defaultTemplate = []string{
	"Lima, {{FECHA_LARGA}}",
	"",
	"Señora",
	"{{NOMBRE_COMPLETO}}",
	"Matrícula {{MATRICULA}}",
	"",
	"Presente.-",
	"",
	"Sr(a). {{APELLIDOS}}",
	"",
	"Nos dirigimos a usted para hacerle saber que recientemente el Banco ha tomado " +
		"conocimiento de determinadas irregularidades ocurridas en el Área {{AREA}} a la cual " +
		"usted pertenece.",
	"",
	"Con el objeto de determinar la existencia de posibles responsabilidades, así como " +
		"recopilar los elementos de prueba necesarios para obtener una determinación del caso, " +
		"el Banco ha dispuesto realizar una investigación de los hechos.",
	"",
	"En tal sentido, le solicitamos, conforme a lo establecido en el Reglamento Interno de Trabajo " +
		"del Banco, nos brinde su colaboración para el esclarecimiento de los hechos materia del proceso " +
		"investigatorio referido, agradeciéndole esté usted a disposición del funcionario que se designe, " +
		"en las oportunidades que sea requerida y mientras dure el mismo.",
	"",
	"Finalmente cumplimos con informarle que esta comunicación no significa de modo alguno una " +
		"sanción disciplinaria ni la imputación de responsabilidad alguna.",
	"",
	"Atentamente,",
	"",
	"BANCO DE CREDITO DEL PERU BCP",
	"",
	"c.c.: Dr. Juan Kam – Gerencia de Relaciones Laborales",
	"Carta N° {{NUMERO_CARTA}}",
}

// Generator persiste las cartas bajo ExportsDir y, si ExternalDir no es
// vacío, duplica el histórico allí. Now permite fijar el reloj en pruebas.
type Generator struct {
	ExportsDir  string
	ExternalDir string
	Hostname    string
	Now         func() time.Time
}

// Result reúne lo producido por una generación.
type Result struct {
	Files []string
	Rows  []map[string]string
}

type cartaContext struct {
	caseID           string
	investigatorName string
	investigatorID   string
	generationDate   time.Time
}

func normalizeIdentifier(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func sanitizeCSVValue(value string) string {
	sanitized := validators.SanitizeRichText(value, 0)
	if strings.HasPrefix(sanitized, "=") || strings.HasPrefix(sanitized, "+") ||
		strings.HasPrefix(sanitized, "-") || strings.HasPrefix(sanitized, "@") {
		return "'" + sanitized
	}
	return sanitized
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Generator) cartasDir() string {
	return filepath.Join(g.ExportsDir, "cartas")
}

func (g *Generator) ensureDirectories() error {
	if err := os.MkdirAll(g.cartasDir(), 0755); err != nil {
		return fmt.Errorf("no se pudo crear la carpeta de cartas: %w", err)
	}
	if g.ExternalDir != "" {
		if err := os.MkdirAll(g.ExternalDir, 0755); err != nil {
			return fmt.Errorf("no se pudo crear la unidad externa: %w", err)
		}
	}
	return nil
}

// loadRecords lee y deduplica los registros previos de todas las rutas de
// historial. Acepta tanto el esquema nuevo (id_carta) como el CSV plano.
func loadRecords(paths []string) ([]map[string]string, error) {
	var records []map[string]string
	seen := map[string]bool{}
	for _, path := range paths {
		if path == "" {
			continue
		}
		file, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("no se pudo leer el historial de cartas: %w", err)
		}
		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		header, err := reader.Read()
		if err != nil {
			file.Close()
			if err == io.EOF {
				continue
			}
			return nil, fmt.Errorf("no se pudo leer el historial de cartas: %w", err)
		}
		index := map[string]int{}
		for i, name := range header {
			index[strings.TrimSpace(name)] = i
		}
		_, useHistoryMap := index["id_carta"]
		for {
			row, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				file.Close()
				return nil, fmt.Errorf("no se pudo leer el historial de cartas: %w", err)
			}
			get := func(name string) string {
				i, ok := index[name]
				if !ok || i >= len(row) {
					return ""
				}
				return row[i]
			}
			record := map[string]string{}
			if useHistoryMap {
				for source, target := range historyFieldMap {
					record[target] = get(source)
				}
			} else {
				for _, field := range csvFields {
					record[field] = get(field)
				}
			}
			var keyParts []string
			for _, key := range historyKeys {
				keyParts = append(keyParts, strings.TrimSpace(record[key]))
			}
			key := strings.Join(keyParts, "\x00")
			if seen[key] {
				continue
			}
			seen[key] = true
			records = append(records, record)
		}
		file.Close()
	}
	return records, nil
}

func writeRecords(path string, rows []map[string]string, fields []string) error {
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("no se pudo actualizar %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(fields); err != nil {
			return fmt.Errorf("no se pudo actualizar %s: %w", filepath.Base(path), err)
		}
	}
	for _, row := range rows {
		record := make([]string, 0, len(fields))
		for _, field := range fields {
			record = append(record, sanitizeCSVValue(row[field]))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("no se pudo actualizar %s: %w", filepath.Base(path), err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("no se pudo actualizar %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ensureHistorySchema migra in situ un histórico con el esquema CSV plano
// al esquema nuevo con id_carta.
func ensureHistorySchema(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("no se pudo leer el historial de cartas: %w", err)
	}
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		file.Close()
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("no se pudo leer el historial de cartas: %w", err)
	}
	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	if _, ok := index["id_carta"]; ok {
		file.Close()
		return nil
	}

	var upgraded []map[string]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			file.Close()
			return fmt.Errorf("no se pudo leer el historial de cartas: %w", err)
		}
		get := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		upgraded = append(upgraded, map[string]string{
			"id_carta":               get("Numero_de_Carta"),
			"matricula_team_member":  get("matricula_team_member"),
			"nombres_team_member":    "",
			"apellidos_team_member":  "",
			"fecha_creacion":         get("fecha_generacion"),
			"numero_caso":            get("numero_caso"),
			"matricula_investigador": get("matricula_investigador"),
			"hostname":               "",
		})
	}
	file.Close()

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("no se pudo actualizar %s: %w", filepath.Base(path), err)
	}
	return writeRecords(path, upgraded, historyFields)
}

func parseLastSequence(records []map[string]string, year int) int {
	maxValue := 0
	suffix := "-" + strconv.Itoa(year)
	for _, row := range records {
		cardID := strings.TrimSpace(row["Numero_de_Carta"])
		if !strings.HasSuffix(cardID, suffix) {
			continue
		}
		prefix := strings.TrimSuffix(cardID, suffix)
		value, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		if value > maxValue {
			maxValue = value
		}
	}
	return maxValue
}

func allocateNumbers(count int, records []map[string]string, year int) []string {
	start := parseLastSequence(records, year) + 1
	numbers := make([]string, 0, count)
	for i := start; i < start+count; i++ {
		numbers = append(numbers, fmt.Sprintf("%03d-%d", i, year))
	}
	return numbers
}

var longDateMonths = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatLongDate produce la fecha larga de la carta, p.ej. "02 enero 2024".
func FormatLongDate(date time.Time) string {
	return fmt.Sprintf("%02d %s %d", date.Day(), longDateMonths[date.Month()-1], date.Year())
}

// DetermineTipo clasifica al colaborador por su división: las divisiones
// comerciales (o "DCC") corresponden a Agencia, el resto a Sede.
func DetermineTipo(division string) string {
	normalized := strings.ToLower(validators.NormalizeWithoutAccents(division))
	if strings.Contains(normalized, "comercial") || strings.TrimSpace(normalized) == "dcc" {
		return "Agencia"
	}
	return "Sede"
}

func (g *Generator) buildRow(ctx cartaContext, member model.Colaborador, numeroCarta string) map[string]string {
	entrevista := "Informativo"
	if strings.ToLower(strings.TrimSpace(member.Flag)) == "involucrado" {
		entrevista = "Involucrado"
	}
	return map[string]string{
		"numero_caso":            ctx.caseID,
		"fecha_generacion":       ctx.generationDate.Format("2006-01-02"),
		"mes":                    ctx.generationDate.Format("01"),
		"investigador_principal": ctx.investigatorName,
		"matricula_investigador": ctx.investigatorID,
		"matricula_team_member":  normalizeIdentifier(member.IDColaborador),
		"Tipo":                   DetermineTipo(member.Division),
		"codigo_agencia":         member.CodigoAgencia,
		"agencia":                member.NombreAgencia,
		"Numero_de_Carta":        numeroCarta,
		"Tipo_entrevista":        entrevista,
	}
}

func (g *Generator) buildHistoryRow(ctx cartaContext, member model.Colaborador, numeroCarta string) map[string]string {
	return map[string]string{
		"id_carta":               numeroCarta,
		"matricula_team_member":  normalizeIdentifier(member.IDColaborador),
		"nombres_team_member":    validators.SanitizeRichText(member.Nombres, 0),
		"apellidos_team_member":  validators.SanitizeRichText(member.Apellidos, 0),
		"fecha_creacion":         ctx.generationDate.Format("2006-01-02"),
		"numero_caso":            ctx.caseID,
		"matricula_investigador": ctx.investigatorID,
		"hostname":               g.Hostname,
	}
}

func (g *Generator) buildPlaceholders(ctx cartaContext, row map[string]string, member model.Colaborador) map[string]string {
	fullName := row["matricula_team_member"]
	if member.Nombres != "" || member.Apellidos != "" {
		var parts []string
		if name := strings.TrimSpace(member.Nombres); name != "" {
			parts = append(parts, name)
		}
		if name := strings.TrimSpace(member.Apellidos); name != "" {
			parts = append(parts, name)
		}
		fullName = strings.Join(parts, " ")
	}
	fullName = validators.SanitizeRichText(fullName, 0)
	if fullName == "" {
		fullName = row["matricula_team_member"]
	}
	return map[string]string{
		"NUMERO_CARTA":    row["Numero_de_Carta"],
		"NUMERO_CASO":     row["numero_caso"],
		"COLABORADOR":     fullName,
		"PUESTO":          validators.SanitizeRichText(member.Puesto, 0),
		"AGENCIA":         validators.SanitizeRichText(member.NombreAgencia, 0),
		"INVESTIGADOR":    row["investigador_principal"],
		"FECHA":           row["fecha_generacion"],
		"FECHA_LARGA":     FormatLongDate(ctx.generationDate),
		"NOMBRE_COMPLETO": fullName,
		"MATRICULA":       row["matricula_team_member"],
		"APELLIDOS":       validators.SanitizeRichText(member.Apellidos, 0),
		"AREA":            validators.SanitizeRichText(member.Area, 0),
	}
}

// templateLines devuelve los párrafos de la plantilla: el archivo
// plantilla_carta_inmediatez.txt si existe, si no el cuerpo por defecto.
func (g *Generator) templateLines() []string {
	payload, err := os.ReadFile(filepath.Join(g.cartasDir(), "plantilla_carta_inmediatez.txt"))
	if err != nil {
		return defaultTemplate
	}
	text := strings.ReplaceAll(string(payload), "\r\n", "\n")
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

func renderCarta(lines []string, placeholders map[string]string, outputPath string) error {
	doc := docio.NewDocument()
	for _, line := range lines {
		text := line
		for key, value := range placeholders {
			text = strings.ReplaceAll(text, "{{"+key+"}}", value)
		}
		doc.AddParagraphText(text)
	}
	table := doc.AddTable(2, 2)
	table.SetCell(0, 0, "------------------------------")
	table.SetCell(0, 1, "------------------------------")
	table.SetCell(1, 0, "Funcionario")
	table.SetCell(1, 1, "Funcionario")
	return doc.Save(outputPath)
}

// acquireLock toma el candado de asignación de correlativos. Un candado con
// más de cinco minutos se considera huérfano y se reemplaza.
func (g *Generator) acquireLock() (func(), error) {
	lockPath := filepath.Join(g.cartasDir(), ".cartas.lock")
	for attempt := 0; attempt < 2; attempt++ {
		file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			fmt.Fprintf(file, "%s %s\n", g.Hostname, g.now().Format(time.RFC3339))
			file.Close()
			return func() { os.Remove(lockPath) }, nil
		}
		info, statErr := os.Stat(lockPath)
		if statErr == nil && g.now().Sub(info.ModTime()) > 5*time.Minute {
			os.Remove(lockPath)
			continue
		}
		break
	}
	return nil, ErrGeneracionEnCurso
}

// GenerateCartas produce una carta por colaborador seleccionado. Falla sin
// escribir nada si ya existe una carta para el caso y alguna matrícula.
func (g *Generator) GenerateCartas(cd *casedata.CaseData, members []model.Colaborador) (*Result, error) {
	if len(members) == 0 {
		return nil, ErrSinColaboradores
	}

	ctx := cartaContext{
		caseID:           normalizeIdentifier(cd.Caso.IDCaso),
		investigatorName: validators.SanitizeRichText(cd.Caso.InvestigadorNombre, 0),
		investigatorID:   normalizeIdentifier(cd.Caso.MatriculaInvestigador),
		generationDate:   g.now(),
	}
	if ctx.caseID == "" {
		return nil, ErrCasoObligatorio
	}
	if ctx.investigatorID == "" {
		return nil, ErrMatriculaFaltante
	}

	if err := g.ensureDirectories(); err != nil {
		return nil, err
	}

	release, err := g.acquireLock()
	if err != nil {
		return nil, err
	}
	defer release()

	historyPaths := []string{
		filepath.Join(g.ExportsDir, "h_cartas_inmediatez.csv"),
		filepath.Join(g.ExportsDir, "cartas_inmediatez.csv"),
	}
	if g.ExternalDir != "" {
		historyPaths = append(historyPaths, filepath.Join(g.ExternalDir, "h_cartas_inmediatez.csv"))
	}
	existing, err := loadRecords(historyPaths)
	if err != nil {
		return nil, err
	}

	memberIDs := map[string]bool{}
	for _, member := range members {
		if id := normalizeIdentifier(member.IDColaborador); id != "" {
			memberIDs[id] = true
		}
	}
	for _, record := range existing {
		if normalizeIdentifier(record["numero_caso"]) != ctx.caseID {
			continue
		}
		memberID := normalizeIdentifier(record["matricula_team_member"])
		if memberID != "" && memberIDs[memberID] {
			return nil, fmt.Errorf("%w: caso %s, matrícula %s", ErrCartaDuplicada, ctx.caseID, memberID)
		}
	}

	numbers := allocateNumbers(len(members), existing, ctx.generationDate.Year())
	lines := g.templateLines()

	result := &Result{}
	var historyRows []map[string]string
	for i, member := range members {
		row := g.buildRow(ctx, member, numbers[i])
		result.Rows = append(result.Rows, row)
		historyRows = append(historyRows, g.buildHistoryRow(ctx, member, numbers[i]))

		outputName := "carta_" + row["matricula_team_member"] + "_" + numbers[i] + ".docx"
		if row["matricula_team_member"] == "" {
			outputName = "carta_colaborador_" + numbers[i] + ".docx"
		}
		outputPath := filepath.Join(g.cartasDir(), outputName)
		if err := renderCarta(lines, g.buildPlaceholders(ctx, row, member), outputPath); err != nil {
			return nil, fmt.Errorf("no se pudo generar %s: %w", outputName, err)
		}
		result.Files = append(result.Files, outputPath)
	}

	if err := writeRecords(filepath.Join(g.ExportsDir, "cartas_inmediatez.csv"), result.Rows, csvFields); err != nil {
		return nil, err
	}
	localHistory := filepath.Join(g.ExportsDir, "h_cartas_inmediatez.csv")
	if err := ensureHistorySchema(localHistory); err != nil {
		return nil, err
	}
	if err := writeRecords(localHistory, historyRows, historyFields); err != nil {
		return nil, err
	}
	if g.ExternalDir != "" {
		externalHistory := filepath.Join(g.ExternalDir, "h_cartas_inmediatez.csv")
		if err := ensureHistorySchema(externalHistory); err != nil {
			return nil, err
		}
		if err := writeRecords(externalHistory, historyRows, historyFields); err != nil {
			return nil, err
		}
	}

	return result, nil
}
