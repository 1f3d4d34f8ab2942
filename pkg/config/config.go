// Copyright 2025 letter-box-updates authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/aaurigemmafbr/letter-box-updates/pkg/text"
)

// 🔌 Parser is the interface for settings parsers
type Parser interface {
	// 📝 Parse parses the settings from bytes
	Parse(ctx context.Context, data []byte) (*Settings, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Settings describes the private letter-template repository and the
// template file format conventions the tool operates on.
type Settings struct {
	Provider       string `json:"provider,omitempty" yaml:"provider,omitempty" hcl:"provider,optional"`
	Owner          string `json:"owner" yaml:"owner" hcl:"owner"`
	Name           string `json:"name" yaml:"name" hcl:"name"`
	Branch         string `json:"branch,omitempty" yaml:"branch,omitempty" hcl:"branch,optional"`
	BaseTemplates  string `json:"base_templates,omitempty" yaml:"base_templates,omitempty" hcl:"base_templates,optional"`
	UpdatedLetters string `json:"updated_letters,omitempty" yaml:"updated_letters,omitempty" hcl:"updated_letters,optional"`
	LivePattern    string `json:"live_pattern,omitempty" yaml:"live_pattern,omitempty" hcl:"live_pattern,optional"`
	BodyStartTag   string `json:"body_start_tag,omitempty" yaml:"body_start_tag,omitempty" hcl:"body_start_tag,optional"`
	BodyEndTag     string `json:"body_end_tag,omitempty" yaml:"body_end_tag,omitempty" hcl:"body_end_tag,optional"`
	CatalogPath    string `json:"catalog_path,omitempty" yaml:"catalog_path,omitempty" hcl:"catalog_path,optional"`
	TokenFile      string `json:"token_file,omitempty" yaml:"token_file,omitempty" hcl:"token_file,optional"`
}

// 🎯 Load loads the settings from a file
func Load(ctx context.Context, path string) (*Settings, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading settings")

	// Read settings file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading settings file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse settings
	s, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing settings: %w", err)
	}

	return s, nil
}

// 🔍 Validate checks required fields and fills in format defaults.
func (s *Settings) Validate() error {
	if s.Owner == "" {
		return errors.Errorf("owner is required")
	}
	if s.Name == "" {
		return errors.Errorf("name is required")
	}

	// Set defaults
	if s.Provider == "" {
		s.Provider = "github"
	}
	if s.Branch == "" {
		s.Branch = "main"
	}
	if s.BaseTemplates == "" {
		s.BaseTemplates = "base_templates"
	}
	if s.UpdatedLetters == "" {
		s.UpdatedLetters = "updated_letters"
	}
	if s.LivePattern == "" {
		s.LivePattern = "*_live.txt"
	}
	if s.BodyStartTag == "" {
		s.BodyStartTag = "<!-- start here -->"
	}
	if s.BodyEndTag == "" {
		s.BodyEndTag = "<!-- end here -->"
	}
	if s.CatalogPath == "" {
		s.CatalogPath = "config/signatures.json"
	}

	return nil
}

// 📝 FullName returns the owner/name form of the repository.
func (s *Settings) FullName() string {
	return fmt.Sprintf("%s/%s", s.Owner, s.Name)
}

// 📝 String returns a string representation of the settings
func (s *Settings) String() string {
	return fmt.Sprintf("%s@%s (%s -> %s)", s.FullName(), s.Branch, s.BaseTemplates, s.UpdatedLetters)
}

// 🏷️ BodyMarkers returns the marker pair bounding the wording region of a
// template.
func (s *Settings) BodyMarkers() text.MarkerPair {
	return text.MarkerPair{Start: s.BodyStartTag, End: s.BodyEndTag}
}

// 🏷️ SignatureMarkers returns the marker pair bounding a location's
// signature region. Marker spelling is part of the template file format:
// `<!-- denver sig start -->` ... `<!-- denver sig end -->`.
func (s *Settings) SignatureMarkers(location string) text.MarkerPair {
	loc := strings.ToLower(location)
	return text.MarkerPair{
		Start: fmt.Sprintf("<!-- %s sig start -->", loc),
		End:   fmt.Sprintf("<!-- %s sig end -->", loc),
	}
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Settings, error) {
	var s Settings
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, errors.Errorf("validating settings: %w", err)
	}

	return &s, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Settings, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "letterbox.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var s Settings
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &s)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if err := s.Validate(); err != nil {
		return nil, errors.Errorf("validating settings: %w", err)
	}

	return &s, nil
}
