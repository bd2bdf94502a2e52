package localkv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalKV(t *testing.T) {
	kv, err := NewLocalKV(nil)
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set("indiview-chart-ETH.html", `{"title":"ETH"}`))
	require.NoError(t, kv.Set("indiview-chart-BTC.html", `{"title":"BTC"}`))

	value, err := kv.Get("indiview-chart-ETH.html")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"ETH"}`, value)

	keys, err := kv.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"indiview-chart-BTC.html", "indiview-chart-ETH.html"}, keys)

	require.NoError(t, kv.Delete("indiview-chart-BTC.html"))
	require.NoError(t, kv.Delete("indiview-chart-BTC.html"))

	_, err = kv.Get("indiview-chart-BTC.html")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalKV_RemoveDB(t *testing.T) {
	dir := t.TempDir()

	kv, err := NewLocalKV(&dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set("a", "b"))

	dbFile := filepath.Join(dir, "figures.db")
	_, err = os.Stat(dbFile)
	require.NoError(t, err)

	require.NoError(t, kv.RemoveDB())
	_, err = os.Stat(dbFile)
	assert.True(t, os.IsNotExist(err))
}
