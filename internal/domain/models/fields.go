package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TagList is the canonical form of a "type" field. Source documents carry
// either a single tag or a list of tags; both decode into an ordered list.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = tagsFromString(single)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("type must be a string or a list of strings: %w", err)
	}

	*t = TagList(list)
	return nil
}

func (t *TagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*t = tagsFromString(single)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*t = TagList(list)
		return nil
	default:
		return fmt.Errorf("line %d: type must be a string or a list of strings", value.Line)
	}
}

func tagsFromString(s string) TagList {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return TagList{s}
}

// ImageRef is the canonical image descriptor. Source documents carry either
// a plain reference or a {main, hover} object.
type ImageRef struct {
	Main  string `json:"main" yaml:"main"`
	Hover string `json:"hover,omitempty" yaml:"hover,omitempty"`
}

type imageRefFields ImageRef

func (r *ImageRef) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*r = ImageRef{Main: plain}
		return nil
	}

	var fields imageRefFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("image must be a string or a {main, hover} object: %w", err)
	}

	*r = ImageRef(fields)
	return nil
}

func (r *ImageRef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var plain string
		if err := value.Decode(&plain); err != nil {
			return err
		}
		*r = ImageRef{Main: plain}
		return nil
	case yaml.MappingNode:
		var fields imageRefFields
		if err := value.Decode(&fields); err != nil {
			return err
		}
		*r = ImageRef(fields)
		return nil
	default:
		return fmt.Errorf("line %d: image must be a string or a {main, hover} mapping", value.Line)
	}
}

// IsZero reports whether no main image is set.
func (r ImageRef) IsZero() bool {
	return r.Main == ""
}

// Detail is one label/value row of a character profile.
type Detail struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Details keeps profile rows in document order. It decodes from a mapping
// (label: value) or from the canonical list of {label, value} rows.
type Details []Detail

type detailRows []Detail

func (d *Details) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*d = nil
		return nil
	}

	if trimmed[0] == '[' {
		var rows detailRows
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return err
		}
		*d = Details(rows)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("details must be an object or a list")
	}

	var rows Details
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("details: unexpected key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			value = string(raw)
		}

		rows = append(rows, Detail{Label: label, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = rows
	return nil
}

func (d *Details) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		rows := make(Details, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			rows = append(rows, Detail{
				Label: value.Content[i].Value,
				Value: value.Content[i+1].Value,
			})
		}
		*d = rows
		return nil
	case yaml.SequenceNode:
		var rows detailRows
		if err := value.Decode(&rows); err != nil {
			return err
		}
		*d = Details(rows)
		return nil
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*d = nil
			return nil
		}
	}

	return fmt.Errorf("line %d: details must be a mapping or a list", value.Line)
}
