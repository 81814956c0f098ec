package services

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/taskdesk/taskdesk/domain"
	"github.com/taskdesk/taskdesk/internal/infrastructure/kvstore"
)

//go:embed snapshot_schema.json
var snapshotSchema string

// Exporter writes dated backup files of the full dataset and restores them.
// Every restore is validated against the snapshot schema before a single byte
// reaches the store.
type Exporter struct {
	store  *kvstore.Store
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

func NewExporter(store *kvstore.Store, dir string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		dir = "."
	}
	return &Exporter{
		store:  store,
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}
}

// Export writes the current dataset to a dated file and returns its path.
// Exports on the same day overwrite each other.
func (e *Exporter) Export() (string, error) {
	snap, err := e.store.ExportAll()
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeStorage, "export dataset", err)
	}

	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeInternal, "encode snapshot", err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", domain.WrapError(domain.ErrCodeStorage, "create backup dir", err)
	}

	name := fmt.Sprintf("task-backup-%s.json", e.now().Format("2006-01-02"))
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", domain.WrapError(domain.ErrCodeStorage, "write backup file", err)
	}

	e.logger.Info("dataset exported", zap.String("path", path))
	return path, nil
}

// Import validates a backup file and loads it into the store, replacing both
// collections atomically.
func (e *Exporter) Import(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "read backup file", err)
	}

	if err := ValidateSnapshot(payload); err != nil {
		return err
	}

	var snap kvstore.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "decode snapshot", err)
	}

	if err := e.store.ImportAll(&snap); err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "restore dataset", err)
	}

	e.logger.Info("dataset imported", zap.String("path", path))
	return nil
}

// ValidateSnapshot checks a raw backup payload against the snapshot schema.
func ValidateSnapshot(payload []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("snapshot.json", strings.NewReader(snapshotSchema)); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "load snapshot schema", err)
	}
	schema, err := compiler.Compile("snapshot.json")
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "compile snapshot schema", err)
	}

	var doc interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "backup file is not valid JSON", err)
	}
	if err := schema.Validate(doc); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "backup file does not match the snapshot format", err)
	}
	return nil
}
