package config

import (
	"context"
	"errors"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/headwind-cms/headwind/pkg/domain/interfaces"
	"github.com/headwind-cms/headwind/pkg/domain/model"
	"github.com/headwind-cms/headwind/pkg/domain/types"
	"github.com/headwind-cms/headwind/pkg/repository/firestore"
	"github.com/headwind-cms/headwind/pkg/repository/memory"
	"github.com/headwind-cms/headwind/pkg/utils/logging"
)

// SchemaFile holds the CLI flag for a TOML file of content-type definitions
// to seed at startup
type SchemaFile struct {
	path string
}

// Flags returns CLI flags for schema file configuration
func (s *SchemaFile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "schema-file",
			Usage:       "TOML file of content type definitions to create at startup",
			Sources:     cli.EnvVars("HEADWIND_SCHEMA_FILE"),
			Destination: &s.path,
		},
	}
}

// Path returns the configured schema file path
func (s *SchemaFile) Path() string {
	return s.path
}

// FieldConfig represents one field definition in a schema file
type FieldConfig struct {
	Name           string   `toml:"name"`
	Kind           string   `toml:"kind"`
	Optional       bool     `toml:"optional"`
	RelationTarget string   `toml:"relation_target"`
	EnumOptions    []string `toml:"enum_options"`
}

// ContentTypeConfig represents one content type definition in a schema file
type ContentTypeConfig struct {
	Name   string        `toml:"name"`
	Fields []FieldConfig `toml:"field"`
}

// SchemaConfig is the root of a schema file
type SchemaConfig struct {
	ContentTypes []ContentTypeConfig `toml:"content_type"`
}

// ToModel converts a content type definition to its domain model
func (c *ContentTypeConfig) ToModel() *model.ContentType {
	ct := &model.ContentType{
		Name:   c.Name,
		Fields: make([]model.FieldDefinition, len(c.Fields)),
	}
	for i, f := range c.Fields {
		ct.Fields[i] = model.FieldDefinition{
			Name:           f.Name,
			Kind:           types.FieldKind(f.Kind),
			Optional:       f.Optional,
			RelationTarget: types.ContentTypeID(f.RelationTarget),
			EnumOptions:    f.EnumOptions,
		}
	}
	return ct
}

// Validate checks every content type definition in the file
func (s *SchemaConfig) Validate() error {
	names := make(map[string]bool, len(s.ContentTypes))
	for i := range s.ContentTypes {
		ct := s.ContentTypes[i].ToModel()
		if err := ct.Validate(); err != nil {
			return goerr.Wrap(err, "invalid content type definition", goerr.V("name", ct.Name))
		}
		if names[ct.Name] {
			return goerr.New("duplicate content type name", goerr.V("name", ct.Name))
		}
		names[ct.Name] = true
	}
	return nil
}

// Load parses and validates the configured schema file
func (s *SchemaFile) Load() (*SchemaConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read schema file", goerr.V("path", s.path))
	}

	var cfg SchemaConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse schema file", goerr.V("path", s.path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid schema file", goerr.V("path", s.path))
	}

	return &cfg, nil
}

// Apply creates the content types from the schema file that do not exist yet.
// Types whose name is already taken are left as they are.
func (s *SchemaFile) Apply(ctx context.Context, repo interfaces.Repository) error {
	if s.path == "" {
		return nil
	}

	cfg, err := s.Load()
	if err != nil {
		return err
	}

	for i := range cfg.ContentTypes {
		ct := cfg.ContentTypes[i].ToModel()

		if _, err := repo.ContentType().GetByName(ctx, ct.Name); err == nil {
			logging.From(ctx).Debug("content type already exists, skipping", "name", ct.Name)
			continue
		} else if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			return goerr.Wrap(err, "failed to check content type", goerr.V("name", ct.Name))
		}

		created, err := repo.ContentType().Create(ctx, ct)
		if err != nil {
			return goerr.Wrap(err, "failed to seed content type", goerr.V("name", ct.Name))
		}
		logging.From(ctx).Info("Seeded content type",
			"name", created.Name,
			"id", created.ID,
			"field_count", len(created.Fields),
		)
	}

	return nil
}
