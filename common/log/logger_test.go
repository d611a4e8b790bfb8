package log

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLevels(t *testing.T) {
	defer Configure(Config{})

	var buf bytes.Buffer
	require.NoError(t, Configure(Config{Writer: &buf}))

	logger := GetLogger("module", "test")
	logger.Debug("hidden at warn level")
	logger.Error("reported by the command")
	logger.Warning("key resolution slow", "specifier", "cert.pem")
	assert.NotContains(t, buf.String(), "hidden at warn level")
	assert.NotContains(t, buf.String(), "reported by the command")
	assert.Contains(t, buf.String(), "key resolution slow")
	assert.Contains(t, buf.String(), "module=test")
	assert.Contains(t, buf.String(), "specifier=cert.pem")

	buf.Reset()
	require.NoError(t, Configure(Config{Writer: &buf, Debug: true}))
	logger.Debugf("payload loaded from %s", "input.txt")
	logger.Errorf("cannot read %s", "input.txt")
	assert.Contains(t, buf.String(), "payload loaded from input.txt")
	assert.Contains(t, buf.String(), "cannot read input.txt")
}

func TestConfigureErrorFile(t *testing.T) {
	defer Configure(Config{})

	errorFile := filepath.Join(t.TempDir(), "logs", "error.json")
	var buf bytes.Buffer
	require.NoError(t, Configure(Config{Writer: &buf, ErrorFile: errorFile}))

	logger := GetLogger("module", "test").New("input", "a.txt")
	logger.Warning("not an error")
	logger.Error("verification aborted", "reason", "boom")

	raw, err := ioutil.ReadFile(errorFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"verification aborted"`)
	assert.Contains(t, string(raw), `"input":"a.txt"`)
	assert.NotContains(t, string(raw), "not an error")
	assert.Contains(t, buf.String(), "not an error")
	assert.NotContains(t, buf.String(), "verification aborted")
}

func TestCreateDirIfMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	empty, err := CreateDirIfMissing(dir)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "error.json"), []byte("{}"), 0644))
	empty, err = CreateDirIfMissing(dir)
	require.NoError(t, err)
	assert.False(t, empty)
}
