// Package fs provides file-based storage for scraped rules.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/rulescrape"
)

// Ensure RuleWriter implements rulescrape.RuleWriter at compile time.
var _ rulescrape.RuleWriter = (*RuleWriter)(nil)

// RuleWriter writes rules to a single JSON file.
// The array is encoded to path.tmp first and renamed over path once
// complete, so an interrupted write leaves any previous output intact.
type RuleWriter struct {
	path string
}

// NewRuleWriter creates a new RuleWriter that writes to path.
func NewRuleWriter(path string) *RuleWriter {
	return &RuleWriter{path: path}
}

func (w *RuleWriter) tempPath() string {
	return w.path + ".tmp"
}

// WriteRules writes rules as an indented JSON array. Rules are written as
// extracted; a row missing its title or identifier is kept.
// A nil slice is written as an empty array.
func (w *RuleWriter) WriteRules(ctx context.Context, rules []*rulescrape.Rule) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeRules(rules)
	if err != nil {
		return err
	}

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(w.tempPath(), data, 0644); err != nil {
		_ = os.Remove(w.tempPath())
		return err
	}
	if err := os.Rename(w.tempPath(), w.path); err != nil {
		_ = os.Remove(w.tempPath())
		return err
	}
	return nil
}

// EncodeRules renders rules as a JSON array indented with two spaces.
// HTML characters and non-ASCII text are written as-is.
func EncodeRules(rules []*rulescrape.Rule) ([]byte, error) {
	if rules == nil {
		rules = []*rulescrape.Rule{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rules); err != nil {
		return nil, rulescrape.Errorf(rulescrape.EINTERNAL, "encode rules: %v", err)
	}
	return buf.Bytes(), nil
}

// ReadRules reads a file written by RuleWriter.
// Returns ENOTFOUND if the file does not exist and EINVALID if it does not
// hold a JSON array of rules.
func ReadRules(path string) ([]*rulescrape.Rule, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, rulescrape.Errorf(rulescrape.ENOTFOUND, "rules file not found: %s", path)
	} else if err != nil {
		return nil, err
	}

	var rules []*rulescrape.Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, rulescrape.Errorf(rulescrape.EINVALID, "decode %s: %v", path, err)
	}
	return rules, nil
}
