// Package project loads project files describing the surfaces to estimate.
// HCL, YAML and JSON are supported; the format follows the file extension.
package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"buildcost/core/types"
	"buildcost/internal/errors"
)

// Format is a project file format
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.NotSupported(fmt.Sprintf("project file extension %q", filepath.Ext(path))).
			WithContext("path", path)
	}
}

// Load reads and decodes a project file
func Load(path string) (*types.Project, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "failed to read project file %s", path)
	}
	return Parse(src, path, format)
}

// Parse decodes project source in the given format.
// filename is only used in diagnostics.
func Parse(src []byte, filename string, format Format) (*types.Project, error) {
	var (
		p   *types.Project
		err error
	)
	switch format {
	case FormatHCL:
		p, err = parseHCL(src, filename)
	case FormatYAML:
		p = &types.Project{}
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		if derr := dec.Decode(p); derr != nil {
			err = errors.Parsing("invalid YAML project "+filename, derr)
		}
	case FormatJSON:
		p = &types.Project{}
		dec := json.NewDecoder(bytes.NewReader(src))
		dec.DisallowUnknownFields()
		if derr := dec.Decode(p); derr != nil {
			err = errors.Parsing("invalid JSON project "+filename, derr)
		}
	default:
		err = errors.NotSupported(fmt.Sprintf("project format %q", format))
	}
	if err != nil {
		return nil, err
	}

	AssignIDs(p)
	return p, nil
}

// AssignIDs gives the project and every surface without one an id.
// A named surface gets "<kind>.<name>" so that two versions of the same
// file pair up when diffed; repeats of a derived id get a "-N" suffix.
// Unnamed surfaces fall back to a random uuid.
func AssignIDs(p *types.Project) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	taken := make(map[string]bool, len(p.Surfaces))
	for _, s := range p.Surfaces {
		if s.ID != "" {
			taken[s.ID] = true
		}
	}
	for i := range p.Surfaces {
		s := &p.Surfaces[i]
		if s.ID != "" {
			continue
		}
		name := strings.TrimSpace(s.Name)
		if name == "" {
			s.ID = uuid.NewString()
			continue
		}
		base := strings.ToLower(strings.TrimSpace(string(s.Kind))) + "." + name
		id := base
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		taken[id] = true
		s.ID = id
	}
}
