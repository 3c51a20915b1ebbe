package flatfile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// codec converts between tasks and a file encoding. decode returns the
// generic document (a []any of map[string]any records) so that it can be
// schema-checked before any task is built from it.
type codec interface {
	encode(tasks []types.Task) ([]byte, error)
	decode(data []byte) (any, error)
}

// codecs maps a format name to its codec.
var codecs = map[string]codec{
	types.FormatJSON:  jsonCodec{},
	types.FormatJSONL: jsonlCodec{},
	types.FormatYAML:  yamlCodec{},
}

// jsonCodec writes a single indented JSON array.
type jsonCodec struct{}

func (jsonCodec) encode(tasks []types.Task) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (jsonCodec) decode(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// jsonlCodec writes one JSON record per line.
type jsonlCodec struct{}

func (jsonlCodec) encode(tasks []types.Task) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, task := range tasks {
		// Encode appends the newline.
		if err := enc.Encode(task); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// decode reads records as a stream, so a record has no size limit. A single
// unparseable record fails the whole file; the error names the line it
// starts on.
func (jsonlCodec) decode(data []byte) (any, error) {
	records := []any{}
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		start := dec.InputOffset()
		var rec any
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineAt(data, start), err)
		}
		records = append(records, rec)
	}
	end := dec.InputOffset()
	if rest := bytes.TrimSpace(data[end:]); len(rest) > 0 {
		return nil, fmt.Errorf("line %d: unexpected %q", lineAt(data, end), rest[0])
	}
	return records, nil
}

// lineAt returns the 1-based line of the first non-space byte at or after
// offset.
func lineAt(data []byte, offset int64) int {
	rest := data[offset:]
	skipped := len(rest) - len(bytes.TrimLeft(rest, " \t\r\n"))
	return bytes.Count(data[:int(offset)+skipped], []byte("\n")) + 1
}

// yamlCodec writes a YAML sequence of mappings.
type yamlCodec struct{}

func (yamlCodec) encode(tasks []types.Task) ([]byte, error) {
	return yaml.Marshal(tasks)
}

func (yamlCodec) decode(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
