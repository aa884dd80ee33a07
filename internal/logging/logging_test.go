package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coil.log")

	cleanup, err := Setup(logrus.DebugLevel, path)
	require.NoError(t, err)
	logrus.WithField("test", "Test 1").Debug("window selected")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "window selected")
	assert.Contains(t, string(data), "test=\"Test 1\"")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetupBadPath(t *testing.T) {
	_, err := Setup(logrus.InfoLevel, filepath.Join(t.TempDir(), "missing", "coil.log"))
	assert.Error(t, err)
}
