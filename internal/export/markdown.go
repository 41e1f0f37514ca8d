// Package export builds the user-facing export artifacts: the markdown prompt
// table copied to the clipboard and the download form of a rendered image.
package export

import (
	"encoding/base64"
	"fmt"
	"strings"

	"fitvision/internal/batch"
)

const markdownHeader = "| 课程名称 | 中文 Prompt |\n|---|---|\n"

// MarkdownTable renders all successfully resolved items as a two-column
// markdown table. The output format is a fixed contract with the clipboard
// consumers.
func MarkdownTable(items []batch.Item) string {
	var rows []string
	for _, it := range items {
		if it.Status != batch.StatusSuccess {
			continue
		}
		rows = append(rows, fmt.Sprintf("| %s | %s |", it.Name, it.Prompt))
	}
	return markdownHeader + strings.Join(rows, "\n")
}

// ImageFilename names a downloaded image after its course title.
func ImageFilename(courseName string) string {
	return courseName + "-fitvision.png"
}

// DecodeDataURI splits a data URI into its MIME type and raw bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("export: not a data URI")
	}
	mime, encoded, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("export: unsupported data URI encoding")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("export: decode image payload: %w", err)
	}
	return mime, data, nil
}
