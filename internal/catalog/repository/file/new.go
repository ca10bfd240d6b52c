package file

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"pastalink-bot/internal/catalog/repository"
	pkgLog "pastalink-bot/pkg/log"
)

//go:embed schema.json
var entrySchema []byte

type implRepository struct {
	path   string
	schema *gojsonschema.Schema
	l      pkgLog.Logger
}

// New creates a file-backed catalog repository. JSON is the default format;
// .yaml and .yml files are decoded as YAML.
func New(path string, l pkgLog.Logger) (repository.Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog/repository/file: path is required")
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(entrySchema))
	if err != nil {
		return nil, fmt.Errorf("catalog/repository/file: failed to compile schema: %w", err)
	}

	return &implRepository{path: path, schema: schema, l: l}, nil
}
