package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synaptica-ai/heartrisk/pkg/common/logger"
)

const (
	modelJSON  = `{"model":{"type":"logistic","version":"v1","feature_names":["Age","Sex_M"],"weights":{"bias":0,"coefficients":[1,1]}}}`
	scalerJSON = `{"mean":[50,0.5],"scale":[10,0.5]}`
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadJSONColumns(t *testing.T) {
	logger.Silence()
	dir := writeFiles(t, map[string]string{
		ModelFile:      modelJSON,
		ScalerFile:     scalerJSON,
		"columns.json": `["Age","Sex_M"]`,
	})

	bundle, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"Age", "Sex_M"}, bundle.Schema.Columns())
	require.Equal(t, "logistic", bundle.ModelType)
	require.Equal(t, "v1", bundle.ModelVersion)
	require.Equal(t, 2, bundle.Classifier.NumFeatures())
}

func TestLoadYAMLColumns(t *testing.T) {
	logger.Silence()
	dir := writeFiles(t, map[string]string{
		ModelFile:      modelJSON,
		ScalerFile:     scalerJSON,
		"columns.yaml": "- Age\n- Sex_M\n",
	})

	bundle, err := Load(dir)
	require.NoError(t, err)
	require.True(t, bundle.Schema.Has("Sex_M"))
}

func TestLoadMissingArtifacts(t *testing.T) {
	dir := writeFiles(t, map[string]string{ModelFile: modelJSON, ScalerFile: scalerJSON})
	_, err := Load(dir)
	require.ErrorIs(t, err, ErrMissing)

	_, err = Load(t.TempDir())
	require.ErrorIs(t, err, ErrMissing)
}

func TestLoadCorruptArtifacts(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		ModelFile:      `{"model":`,
		ScalerFile:     scalerJSON,
		"columns.json": `["Age","Sex_M"]`,
	})
	_, err := Load(dir)
	require.ErrorIs(t, err, ErrCorrupt)

	dir = writeFiles(t, map[string]string{
		ModelFile:      modelJSON,
		ScalerFile:     scalerJSON,
		"columns.json": `["Age","Age"]`,
	})
	_, err = Load(dir)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestLoadMismatchedArtifacts(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		ModelFile:      modelJSON,
		ScalerFile:     `{"mean":[50],"scale":[10]}`,
		"columns.json": `["Age","Sex_M"]`,
	})
	_, err := Load(dir)
	require.ErrorIs(t, err, ErrMismatch)

	dir = writeFiles(t, map[string]string{
		ModelFile:      modelJSON,
		ScalerFile:     scalerJSON,
		"columns.json": `["Sex_M","Age"]`,
	})
	_, err = Load(dir)
	require.ErrorIs(t, err, ErrMismatch)
}

func TestLoadDigestTracksContents(t *testing.T) {
	logger.Silence()
	files := map[string]string{
		ModelFile:      modelJSON,
		ScalerFile:     scalerJSON,
		"columns.json": `["Age","Sex_M"]`,
	}
	a, err := Load(writeFiles(t, files))
	require.NoError(t, err)
	b, err := Load(writeFiles(t, files))
	require.NoError(t, err)
	require.Len(t, a.Digest, 64)
	require.Equal(t, a.Digest, b.Digest)

	files[ScalerFile] = `{"mean":[40,0.5],"scale":[10,0.5]}`
	c, err := Load(writeFiles(t, files))
	require.NoError(t, err)
	require.NotEqual(t, a.Digest, c.Digest)
}
