// Package export renders the task list into shareable documents.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Supported export formats.
const (
	FormatPDF      = "pdf"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Formats lists the accepted format names.
var Formats = []string{FormatPDF, FormatCSV, FormatMarkdown}

// Render produces the document for tasks in the named format.
func Render(tasks []types.Task, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatPDF:
		return renderPDF(tasks)
	case FormatCSV:
		return renderCSV(tasks)
	case FormatMarkdown, "md":
		return renderMarkdown(tasks), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
}

func renderCSV(tasks []types.Task) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCSV(&buf, tasks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeCSV writes a header row and one row per task to out.
func writeCSV(out io.Writer, tasks []types.Task) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"position", "title", "description", "category", "completed"}); err != nil {
		return err
	}
	for i, t := range tasks {
		if err := w.Write([]string{strconv.Itoa(i + 1), t.Title, t.Description, t.Category, strconv.FormatBool(t.Completed)}); err != nil {
			return fmt.Errorf("writing task %d: %w", i+1, err)
		}
	}
	w.Flush()
	return w.Error()
}

func renderMarkdown(tasks []types.Task) []byte {
	var b strings.Builder
	b.WriteString("# To-Do List\n\n")
	if len(tasks) == 0 {
		b.WriteString("_No tasks._\n")
		return []byte(b.String())
	}
	for _, t := range tasks {
		box := " "
		if t.Completed {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] **%s** [%s]", box, t.Title, t.Category)
		if t.Description != "" {
			fmt.Fprintf(&b, ": %s", t.Description)
		}
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// renderPDF lays out a one-column checklist. The core fonts only cover
// cp1252, so text is translated and completion uses ASCII boxes.
func renderPDF(tasks []types.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("To-Do List", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "To-Do List")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if len(tasks) == 0 {
		pdf.Cell(40, 8, "No tasks.")
	}
	for i, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %d. %s [%s]", box, i+1, t.Title, t.Category)
		pdf.MultiCell(0, 7, tr(line), "", "L", false)
		if t.Description != "" {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetX(pdf.GetX() + 8)
			pdf.MultiCell(0, 5, tr(t.Description), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
