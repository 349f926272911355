package artifacts

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"os"
	"path/filepath"

	"github.com/synaptica-ai/heartrisk/pkg/common/logger"
	"github.com/synaptica-ai/heartrisk/pkg/features"
	"github.com/synaptica-ai/heartrisk/pkg/ml"
	"github.com/synaptica-ai/heartrisk/pkg/ml/scaler"
	"gopkg.in/yaml.v3"
)

const (
	ModelFile  = "model.json"
	ScalerFile = "scaler.json"
)

// ColumnFiles are tried in order; the first one present wins.
var ColumnFiles = []string{"columns.json", "columns.yaml", "columns.yml"}

var (
	ErrMissing  = errors.New("artifact not found")
	ErrCorrupt  = errors.New("artifact corrupt")
	ErrMismatch = errors.New("artifacts disagree")
)

// Bundle holds everything inference needs. It is read-only after Load.
type Bundle struct {
	Schema       features.Schema
	Scaler       scaler.Standard
	Classifier   ml.Classifier
	ModelType    string
	ModelVersion string
	// Digest is the sha256 of the model, scaler and column files, in that
	// order. It changes whenever any artifact's content changes.
	Digest       string
	Dir          string
}

func Load(dir string) (*Bundle, error) {
	digest := sha256.New()

	var artifact ml.Artifact
	if err := readJSON(filepath.Join(dir, ModelFile), &artifact, digest); err != nil {
		return nil, err
	}
	classifier, err := ml.Decode(artifact)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", ModelFile, err, ErrCorrupt)
	}

	var std scaler.Standard
	if err := readJSON(filepath.Join(dir, ScalerFile), &std, digest); err != nil {
		return nil, err
	}
	if err := std.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", ScalerFile, err, ErrCorrupt)
	}

	columns, err := readColumns(dir, digest)
	if err != nil {
		return nil, err
	}
	schema, err := features.NewSchema(columns)
	if err != nil {
		return nil, fmt.Errorf("columns: %v: %w", err, ErrCorrupt)
	}

	if std.NumFeatures() != schema.Len() {
		return nil, fmt.Errorf("scaler has %d columns, schema has %d: %w", std.NumFeatures(), schema.Len(), ErrMismatch)
	}
	if classifier.NumFeatures() != schema.Len() {
		return nil, fmt.Errorf("model expects %d features, schema has %d: %w", classifier.NumFeatures(), schema.Len(), ErrMismatch)
	}
	if names := artifact.Model.FeatureNames; len(names) > 0 && !schema.Equal(names) {
		return nil, fmt.Errorf("model feature names differ from schema columns: %w", ErrMismatch)
	}

	logger.Log.WithFields(map[string]interface{}{
		"dir":        dir,
		"model_type": artifact.Model.Type,
		"columns":    schema.Len(),
	}).Info("Artifacts loaded")

	return &Bundle{
		Schema:       schema,
		Scaler:       std,
		Classifier:   classifier,
		ModelType:    artifact.Model.Type,
		ModelVersion: artifact.Model.Version,
		Digest:       hex.EncodeToString(digest.Sum(nil)),
		Dir:          dir,
	}, nil
}

func readJSON(path string, out interface{}, digest hash.Hash) error {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrMissing)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	digest.Write(content)
	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, ErrCorrupt)
	}
	return nil
}

func readColumns(dir string, digest hash.Hash) ([]string, error) {
	for _, name := range ColumnFiles {
		path := filepath.Join(dir, name)
		content, err := os.ReadFile(filepath.Clean(path))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		digest.Write(content)

		var columns []string
		if filepath.Ext(name) == ".json" {
			err = json.Unmarshal(content, &columns)
		} else {
			err = yaml.Unmarshal(content, &columns)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", path, err, ErrCorrupt)
		}
		return columns, nil
	}
	return nil, fmt.Errorf("%s: one of %v: %w", dir, ColumnFiles, ErrMissing)
}
