package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/headwind-cms/headwind/pkg/cli/config"
	"github.com/headwind-cms/headwind/pkg/domain/model"
)

func cmdValidate() *cli.Command {
	var schemaCfg config.SchemaFile
	var dataPath string
	var typeName string

	flags := schemaCfg.Flags()
	flags = append(flags,
		&cli.StringFlag{
			Name:        "data",
			Usage:       "JSON payload file to validate against a content type",
			Destination: &dataPath,
		},
		&cli.StringFlag{
			Name:        "type",
			Usage:       "Content type name the payload is validated against (required with --data)",
			Destination: &typeName,
		},
	)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a schema file and optionally a payload against it",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			pass := color.New(color.FgGreen, color.Bold)
			fail := color.New(color.FgRed, color.Bold)

			if schemaCfg.Path() == "" {
				return goerr.New("schema-file is required")
			}

			cfg, err := schemaCfg.Load()
			if err != nil {
				fail.Println("✗ schema file is invalid")
				return goerr.Wrap(err, "schema validation failed")
			}

			pass.Println("✓ schema file is valid")
			for i := range cfg.ContentTypes {
				ct := cfg.ContentTypes[i]
				fmt.Printf("  %s (%d fields)\n", ct.Name, len(ct.Fields))
			}

			if dataPath == "" {
				return nil
			}
			if typeName == "" {
				return goerr.New("type is required when data is specified")
			}

			var target *model.ContentType
			for i := range cfg.ContentTypes {
				if cfg.ContentTypes[i].Name == typeName {
					target = cfg.ContentTypes[i].ToModel()
					break
				}
			}
			if target == nil {
				return goerr.New("content type not found in schema file", goerr.V("type", typeName))
			}

			raw, err := os.ReadFile(dataPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read data file", goerr.V("path", dataPath))
			}
			var payload map[string]any
			if err := json.Unmarshal(raw, &payload); err != nil {
				return goerr.Wrap(err, "failed to parse data file", goerr.V("path", dataPath))
			}

			record, err := model.NewSchemaValidator(target).Validate(payload)
			if err != nil {
				fail.Printf("✗ payload does not conform to %q\n", typeName)
				return goerr.Wrap(err, "payload validation failed")
			}

			pass.Printf("✓ payload conforms to %q (%d fields validated)\n", typeName, len(record))
			return nil
		},
	}
}
