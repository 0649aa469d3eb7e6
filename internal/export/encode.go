package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jjimmyk/planningp/internal/domain"
	"gopkg.in/yaml.v3"
)

// Encoder writes documents to w.
type Encoder interface {
	Encode(w io.Writer, docs ...Document) error
}

// YAMLEncoder writes each document as its own YAML stream entry.
type YAMLEncoder struct{}

func (YAMLEncoder) Encode(w io.Writer, docs ...Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, d := range docs {
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("export: encode %s as yaml: %w", d.Header.Form, err)
		}
	}
	return enc.Close()
}

// JSONEncoder writes one document as an object and several as an array.
type JSONEncoder struct {
	Indent bool
}

func (e JSONEncoder) Encode(w io.Writer, docs ...Document) error {
	enc := json.NewEncoder(w)
	if e.Indent {
		enc.SetIndent("", "  ")
	}
	var v any = docs
	if len(docs) == 1 {
		v = docs[0]
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}

// NewEncoder returns the encoder for format: yaml (or yml) or json.
func NewEncoder(format string) (Encoder, error) {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		return YAMLEncoder{}, nil
	case "json":
		return JSONEncoder{Indent: true}, nil
	}
	return nil, domain.NewValidationError("format", "must be yaml or json")
}

// All snapshots every form in Forms order.
func All(bag domain.PhaseDataBag, meta Meta) ([]Document, error) {
	docs := make([]Document, 0, len(Forms()))
	for _, f := range Forms() {
		d, err := Snapshot(f, bag, meta)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}
