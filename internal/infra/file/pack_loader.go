package file

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"trivia-quiz-service/internal/domain"
)

//go:embed pack.schema.json
var packSchemaJSON []byte

const packSchemaURL = "mem://trivia/pack.schema.json"

var packSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(packSchemaURL, bytes.NewReader(packSchemaJSON)); err != nil {
		panic(fmt.Sprintf("add pack schema: %v", err))
	}
	return compiler.MustCompile(packSchemaURL)
}

// PackLoader reads packs from <dir>/<packID>.yaml (or .yml).
type PackLoader struct {
	dir string
}

func NewPackLoader(dir string) *PackLoader {
	return &PackLoader{dir: dir}
}

func (l *PackLoader) LoadPack(_ context.Context, packID string) (domain.Pack, error) {
	if packID == "" || strings.ContainsAny(packID, `/\`) || strings.Contains(packID, "..") {
		return domain.Pack{}, fmt.Errorf("%w: %q", domain.ErrPackNotFound, packID)
	}
	for _, ext := range []string{".yaml", ".yml"} {
		pack, err := LoadFile(filepath.Join(l.dir, packID+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return domain.Pack{}, err
		}
		if pack.ID == "" {
			pack.ID = packID
		}
		return pack, nil
	}
	return domain.Pack{}, fmt.Errorf("%w: %q", domain.ErrPackNotFound, packID)
}

// LoadFile reads, validates and normalizes a single pack file.
func LoadFile(path string) (domain.Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Pack{}, err
	}
	pack, err := Parse(data)
	if err != nil {
		return domain.Pack{}, fmt.Errorf("%s: %w", path, err)
	}
	if pack.ID == "" {
		pack.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return pack, nil
}

// Parse decodes YAML pack content.
func Parse(data []byte) (domain.Pack, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Pack{}, fmt.Errorf("%w: %v", domain.ErrInvalidQuestion, err)
	}
	if err := validateDocument(doc); err != nil {
		return domain.Pack{}, err
	}

	var pack domain.Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return domain.Pack{}, fmt.Errorf("%w: %v", domain.ErrInvalidQuestion, err)
	}
	pack.Normalize()
	if err := pack.Validate(); err != nil {
		return domain.Pack{}, err
	}
	return pack, nil
}

// validateDocument checks the raw YAML tree against the pack schema. The tree is
// passed through encoding/json first so it only holds JSON value types.
func validateDocument(doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidQuestion, err)
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidQuestion, err)
	}
	if err := packSchema.Validate(value); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidQuestion, err)
	}
	return nil
}
