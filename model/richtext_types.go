package model

// TagRef es una anotación posicional tal como llega del widget de texto:
// los índices usan el esquema "línea.columna" (línea 1-based, columna 0-based).
type TagRef struct {
	Tag   string `json:"tag"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// RichTextEntry representa un campo narrativo: texto plano más anotaciones.
// Un campo capturado sin formato se modela con Tags vacío.
type RichTextEntry struct {
	Text string   `json:"text"`
	Tags []TagRef `json:"tags"`
}
