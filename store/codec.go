package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	yaml "gopkg.in/yaml.v3"
)

// tomlTasksKey wraps the task list since TOML documents cannot be top-level arrays.
const tomlTasksKey = "tasks"

// encodeTasks marshals task mappings in the given format.
func encodeTasks(format string, records []map[string]any) ([]byte, error) {
	if records == nil {
		records = []map[string]any{}
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(records, "", "  ")
	case FormatYAML:
		return yaml.Marshal(records)
	case FormatTOML:
		return encodeTOML(map[string]any{tomlTasksKey: records})
	default:
		return nil, fmt.Errorf("unsupported data format for saving: %s", format)
	}
}

// decodeTasks unmarshals task mappings in the given format.
func decodeTasks(format string, data []byte) ([]map[string]any, error) {
	switch format {
	case FormatJSON:
		var records []map[string]any
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
		return records, nil
	case FormatYAML:
		var records []map[string]any
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
		return records, nil
	case FormatTOML:
		var doc map[string]any
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal TOML: %w", err)
		}
		return tomlRecords(doc[tomlTasksKey])
	default:
		return nil, fmt.Errorf("unsupported data format for loading: %s", format)
	}
}

// encodeOptions marshals the options mapping in the given format.
func encodeOptions(format string, options map[string]any) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.Marshal(options)
	case FormatYAML:
		return yaml.Marshal(options)
	case FormatTOML:
		return encodeTOML(options)
	default:
		return nil, fmt.Errorf("unsupported data format for saving: %s", format)
	}
}

// decodeOptions unmarshals the options mapping in the given format.
func decodeOptions(format string, data []byte) (map[string]any, error) {
	options := map[string]any{}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &options)
	case FormatYAML:
		err = yaml.Unmarshal(data, &options)
	case FormatTOML:
		_, err = toml.Decode(string(data), &options)
	default:
		return nil, fmt.Errorf("unsupported data format for loading: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	if options == nil {
		options = map[string]any{}
	}
	return options, nil
}

func encodeTOML(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// tomlRecords accepts both shapes the TOML decoder produces for an array of tables.
func tomlRecords(v any) ([]map[string]any, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []map[string]any:
		return list, nil
	case []any:
		records := make([]map[string]any, 0, len(list))
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("task #%d is not a table", i)
			}
			records = append(records, m)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%q must be an array of tables, got %T", tomlTasksKey, v)
	}
}
