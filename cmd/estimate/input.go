package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/straye-as/estimate-api/internal/domain"
)

// loadInputs reads job inputs from path ("-" is stdin). YAML files are
// converted to JSON first so both formats share the JSON field names.
// Fields missing from the file keep their wizard defaults, except material
// items, which come only from the file.
func loadInputs(path string, stdin io.Reader) (domain.Inputs, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.Inputs{}, fmt.Errorf("failed to read inputs: %w", err)
	}

	if isYAML(path, data) {
		if data, err = yamlToJSON(data); err != nil {
			return domain.Inputs{}, err
		}
	}

	in := domain.DefaultInputs()
	in.Materials.Items = nil
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return domain.Inputs{}, fmt.Errorf("failed to parse inputs: %w", err)
	}
	if in.Materials.Items == nil {
		in.Materials.Items = []domain.LineItem{}
	}
	return in, nil
}

func isYAML(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	case ".json":
		return false
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] != '{'
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml inputs: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert yaml inputs: %w", err)
	}
	return out, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
