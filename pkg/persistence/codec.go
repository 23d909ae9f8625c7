package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
)

// ProtocolKey is the document key holding the protocol name.
const ProtocolKey = "protocol"

// legacyDebugName is the name older tool versions wrote for the debug protocol.
const legacyDebugName = "Debug Mode"

// Format is a file encoding.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatForPath selects the format from the file extension. Anything other
// than .yaml or .yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Result is the outcome of reading a document.
type Result struct {
	// Applied counts the fields taken from the document.
	Applied int

	// Warnings lists the fields that were skipped.
	Warnings []model.Warning
}

// field is one key/value pair in document order.
type field struct {
	key   string
	value any
	line  int
}

// Marshal encodes cfg as an indented JSON document.
func Marshal(cfg model.Config) ([]byte, error) {
	return MarshalFormat(cfg, FormatJSON)
}

// MarshalFormat encodes cfg in the given format. Keys appear in enumeration
// order with the protocol first.
func MarshalFormat(cfg model.Config, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return marshalJSON(cfg)
	case FormatYAML:
		return marshalYAML(cfg)
	default:
		return nil, fmt.Errorf("unsupported format %d", f)
	}
}

func marshalJSON(cfg model.Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	writeEntry := func(key string, value any, last bool) error {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.WriteString("    ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
		if !last {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
		return nil
	}

	if err := writeEntry(ProtocolKey, cfg.Protocol.String(), false); err != nil {
		return nil, err
	}
	inputs := model.AllInputs()
	for i, in := range inputs {
		if err := writeEntry(in.Key(), int(cfg.Channel(in)), i == len(inputs)-1); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func marshalYAML(cfg model.Config) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key, value, tag string) {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value},
		)
	}

	add(ProtocolKey, cfg.Protocol.String(), "!!str")
	for _, in := range model.AllInputs() {
		add(in.Key(), strconv.Itoa(int(cfg.Channel(in))), "!!int")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal reads a JSON document onto cfg and returns the skipped fields.
func Unmarshal(data []byte, cfg *model.Config) ([]model.Warning, error) {
	res, err := UnmarshalFormat(data, FormatJSON, cfg)
	return res.Warnings, err
}

// UnmarshalFormat reads a document onto cfg. Keys missing from the document
// leave cfg untouched. On a structural error cfg is not modified at all.
// Input channels are stored as found, so the result may hold duplicates.
func UnmarshalFormat(data []byte, f Format, cfg *model.Config) (Result, error) {
	var (
		fields []field
		err    error
	)
	switch f {
	case FormatJSON:
		fields, err = parseJSON(data)
	case FormatYAML:
		fields, err = parseYAML(data)
	default:
		err = fmt.Errorf("unsupported format %d", f)
	}
	if err != nil {
		return Result{}, &FileError{Op: "parse", Err: err}
	}

	var res Result
	for _, fl := range fields {
		if w, ok := applyField(cfg, fl); ok {
			res.Applied++
		} else {
			res.Warnings = append(res.Warnings, w)
		}
	}
	return res, nil
}

// errNotObject is reported for documents whose top level is not a mapping.
var errNotObject = errors.New("document is not an object")

// parseJSON streams the top-level object so that fields keep document order.
func parseJSON(data []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var fields []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, field{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after object")
	}
	return fields, nil
}

func parseYAML(data []byte) ([]field, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errNotObject
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errNotObject
	}

	fields := make([]field, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		var value any
		if err := v.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, field{key: k.Value, value: value, line: k.Line})
	}
	return fields, nil
}

func applyField(cfg *model.Config, fl field) (model.Warning, bool) {
	w := model.Warning{Line: fl.line, Key: fl.key, Value: fmt.Sprint(fl.value)}

	if fl.key == ProtocolKey {
		name, ok := fl.value.(string)
		if ok && name == legacyDebugName {
			name = model.ProtocolDebug.String()
		}
		p, found := model.LookupProtocol(name)
		if !ok || !found {
			w.Reason = "unknown protocol"
			return w, false
		}
		cfg.Protocol = p
		return model.Warning{}, true
	}

	in, ok := model.LookupInput(fl.key)
	if !ok {
		w.Reason = "unknown key"
		return w, false
	}
	n, err := toInt(fl.value)
	if err != nil {
		w.Reason = err.Error()
		return w, false
	}
	ch, err := model.ChannelFromInt(fl.key, n)
	if err != nil {
		w.Reason = "channel must be 0-16"
		return w, false
	}
	if err := cfg.Set(in, ch); err != nil {
		w.Reason = err.Error()
		return w, false
	}
	return model.Warning{}, true
}

var errNotInteger = errors.New("not an integer")

// toInt accepts integral numbers and numeric strings.
func toInt(v any) (int, error) {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return clampInt(n), nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, errNotInteger
		}
		return floatToInt(f)
	case int:
		return v, nil
	case int64:
		return clampInt(v), nil
	case uint64:
		if v > math.MaxInt32 {
			return math.MaxInt32, nil
		}
		return int(v), nil
	case float64:
		return floatToInt(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, errNotInteger
		}
		return n, nil
	default:
		return 0, errNotInteger
	}
}

func floatToInt(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, errNotInteger
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return math.MaxInt32, nil
	}
	return int(f), nil
}

// clampInt keeps huge values out of range without overflowing int.
func clampInt(n int64) int {
	if n > math.MaxInt32 || n < math.MinInt32 {
		return math.MaxInt32
	}
	return int(n)
}
