package util

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("frame"))
	}))
	defer srv.Close()

	b, err := GetBytes(srv.URL + "/ok")
	require.NoError(t, err)
	assert.Equal(t, "frame", string(b))

	_, err = GetBytes(srv.URL + "/missing")
	assert.ErrorContains(t, err, "status 404")
}

func TestWriteFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "card.png")
	require.NoError(t, WriteFile(path, []byte{1, 2, 3}))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}
