package fundamentals

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// WriteDocument serializes the document pretty-printed and writes it to
// <dir>/<TICKER>.json, creating the directory if needed. Returns the path
// written.
func WriteDocument(dir, ticker string, doc *Document) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "fundamentals: create output dir %s", dir)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "fundamentals: marshal document")
	}

	path := filepath.Join(dir, strings.ToUpper(ticker)+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", eris.Wrapf(err, "fundamentals: write %s", path)
	}
	return path, nil
}
