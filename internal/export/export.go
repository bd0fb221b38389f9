// Package export writes diagram documents to disk and keeps an index of
// them in the export directory's README.md.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/mindtask/internal/logger"
)

const (
	// Ext is the extension of exported diagram documents.
	Ext = ".mmd"
	// FallbackName is used when a project name slugifies to nothing.
	FallbackName = "untitled-diagram"

	indexMarker = "<!-- DIAGRAMS -->"
	tableHeader = "| Project | File | Date |"
	tableSep    = "|---------|------|------|"
)

// FileName returns the document file name for a project.
func FileName(projectName string) string {
	name := slug.Make(projectName)
	if name == "" {
		name = FallbackName
	}
	return name + Ext
}

// Write saves document as <dir>/<slug>.mmd and records it in the index.
// It returns the document path.
func Write(dir, projectName, document string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	file := FileName(projectName)
	path := filepath.Join(dir, file)
	logger.Debug("Writing diagram to %s", path)
	if err := os.WriteFile(path, []byte(document), 0644); err != nil {
		return "", fmt.Errorf("writing diagram: %w", err)
	}

	if err := updateIndex(filepath.Join(dir, "README.md"), file, projectName); err != nil {
		return "", fmt.Errorf("updating index: %w", err)
	}
	return path, nil
}

func updateIndex(indexPath, file, projectName string) error {
	title := strings.TrimSpace(projectName)
	if title == "" {
		title = "Untitled"
	}
	if r := []rune(title); len(r) > 100 {
		title = string(r[:97]) + "..."
	}
	row := fmt.Sprintf("| %s | [%s](%s) | %s |",
		strings.ReplaceAll(title, "|", "\\|"), file, file, time.Now().Format("2006-01-02"))

	existing, err := os.ReadFile(indexPath)
	var content string
	switch {
	case os.IsNotExist(err):
		content = fmt.Sprintf("# Diagrams\n\nMindmaps exported with mindtask.\n\n%s\n\n%s\n%s\n%s\n",
			indexMarker, tableHeader, tableSep, row)
	case err != nil:
		return fmt.Errorf("reading index: %w", err)
	default:
		content = upsertRow(string(existing), file, row)
	}

	return os.WriteFile(indexPath, []byte(content), 0644)
}

// upsertRow replaces the row linking file, or inserts row at the top of
// the table following the marker. Without a marker the table is appended.
func upsertRow(content, file, row string) string {
	link := "](" + file + ")"
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		if strings.HasPrefix(line, "|") && strings.Contains(line, link) {
			lines[i] = row
			return strings.Join(lines, "\n")
		}
	}

	markerIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == indexMarker {
			markerIdx = i
			break
		}
	}

	if markerIdx == -1 {
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		if strings.TrimSpace(content) != "" {
			content += "\n"
		}
		return content + indexMarker + "\n\n" + tableHeader + "\n" + tableSep + "\n" + row + "\n"
	}

	at := markerIdx + 1
	for at < len(lines) && strings.TrimSpace(lines[at]) == "" {
		at++
	}

	insert := []string{row}
	if at < len(lines) && strings.TrimSpace(lines[at]) == tableHeader {
		at++
		if at < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[at]), "|--") {
			at++
		}
	} else {
		at = markerIdx + 1
		insert = []string{"", tableHeader, tableSep, row}
	}

	out := make([]string, 0, len(lines)+len(insert))
	out = append(out, lines[:at]...)
	out = append(out, insert...)
	out = append(out, lines[at:]...)
	return strings.Join(out, "\n")
}
