package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	store, err := NewLocalStorage(filepath.Join(t.TempDir(), "artifacts"))
	require.NoError(t, err)

	require.NoError(t, store.Store("metrics_estructurado.json", []byte(`{"regions":[]}`)))

	data, err := store.Retrieve("metrics_estructurado.json")
	require.NoError(t, err)
	assert.Equal(t, `{"regions":[]}`, string(data))

	names, err := store.List("metrics_")
	require.NoError(t, err)
	assert.Equal(t, []string{"metrics_estructurado.json"}, names)

	require.NoError(t, store.Delete("metrics_estructurado.json"))
	_, err = store.Retrieve("metrics_estructurado.json")
	assert.Error(t, err)
}

func TestLocalStorage_RequiresDirectory(t *testing.T) {
	_, err := NewLocalStorage("")
	assert.Error(t, err)
}
