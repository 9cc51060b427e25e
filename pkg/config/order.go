package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	goyaml "gopkg.in/yaml.v3"
)

// moduleOrder extracts module names in the order the document declares them.
// The modules table is a mapping keyed by name, and Go maps do not preserve
// insertion order, so each format needs its own ordered scan.
func moduleOrder(raw []byte, format documentFormat) ([]string, error) {
	switch format {
	case formatTOML:
		return tomlModuleOrder(raw)
	case formatYAML:
		return yamlModuleOrder(raw)
	default:
		return jsonModuleOrder(raw)
	}
}

func jsonModuleOrder(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("config document is not an object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		if key != "modules" {
			if err := skipJSONValue(dec); err != nil {
				return nil, err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, fmt.Errorf("modules is not an object")
		}

		var names []string
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			name, _ := nameTok.(string)
			names = append(names, name)
			if err := skipJSONValue(dec); err != nil {
				return nil, err
			}
		}
		return names, nil
	}

	return nil, nil
}

// skipJSONValue consumes one complete JSON value from the decoder.
func skipJSONValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

func tomlModuleOrder(raw []byte) ([]string, error) {
	var doc map[string]interface{}
	md, err := toml.Decode(string(raw), &doc)
	if err != nil {
		return nil, err
	}

	var names []string
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) >= 2 && key[0] == "modules" && !seen[key[1]] {
			names = append(names, key[1])
			seen[key[1]] = true
		}
	}
	return names, nil
}

func yamlModuleOrder(raw []byte) ([]string, error) {
	var doc goyaml.Node
	if err := goyaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != goyaml.MappingNode {
		return nil, nil
	}

	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "modules" {
			continue
		}
		modules := root.Content[i+1]
		if modules.Kind != goyaml.MappingNode {
			return nil, nil
		}
		var names []string
		for j := 0; j+1 < len(modules.Content); j += 2 {
			names = append(names, modules.Content[j].Value)
		}
		return names, nil
	}
	return nil, nil
}
