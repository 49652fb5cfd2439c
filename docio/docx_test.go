package docio

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestDocumentXML_ParagraphsAndStyles(t *testing.T) {
	doc := NewDocument()
	doc.AddHeading("Título", 2)
	doc.AddParagraphText("Texto con <ángulos> & ampersand")
	p := doc.AddParagraph("")
	p.AddRun("negrita", true)

	xml := string(doc.DocumentXML())
	if !strings.Contains(xml, `<w:pStyle w:val="Heading2"/>`) {
		t.Error("missing heading style")
	}
	if !strings.Contains(xml, "Texto con &lt;ángulos&gt; &amp; ampersand") {
		t.Error("special characters should be escaped")
	}
	if !strings.Contains(xml, "<w:b/>") {
		t.Error("bold run should emit <w:b/>")
	}
}

func TestDocumentXML_LineBreaksBecomeBr(t *testing.T) {
	doc := NewDocument()
	doc.AddParagraphText("línea1\nlínea2")
	xml := string(doc.DocumentXML())
	if !strings.Contains(xml, "<w:br/>") {
		t.Error("newline inside a run should become <w:br/>")
	}
}

func TestDocumentXML_Table(t *testing.T) {
	doc := NewDocument()
	table := doc.AddTable(1, 2)
	table.SetCell(0, 0, "a")
	row := table.AddRow()
	table.SetCell(row, 1, "b")
	table.SetCell(99, 0, "ignorado")

	xml := string(doc.DocumentXML())
	if strings.Count(xml, "<w:tr>") != 2 {
		t.Errorf("expected 2 table rows, got %d", strings.Count(xml, "<w:tr>"))
	}
	if strings.Contains(xml, "ignorado") {
		t.Error("out of range SetCell should be ignored")
	}
}

func TestSave_WritesValidPackage(t *testing.T) {
	doc := NewDocument()
	doc.AddHeading("Informe", 1)
	doc.AddParagraphText("Cuerpo")

	path := filepath.Join(t.TempDir(), "doc.docx")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	bundle, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("the docx should be a readable zip: %v", err)
	}
	defer bundle.Close()

	parts := map[string]bool{}
	for _, entry := range bundle.File {
		parts[entry.Name] = true
	}
	for _, required := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/styles.xml",
	} {
		if !parts[required] {
			t.Errorf("missing package part %s", required)
		}
	}

	for _, entry := range bundle.File {
		if entry.Name != "word/document.xml" {
			continue
		}
		reader, err := entry.Open()
		if err != nil {
			t.Fatal(err)
		}
		payload, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(payload), "Informe") {
			t.Error("document.xml should carry the heading text")
		}
	}
}
