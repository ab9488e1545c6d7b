package voiceprint

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/nguyentantai21042004/meeting-scribe/internal/speaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWav(t *testing.T, path string, channels int, data []int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, 16000, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: 16000},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func TestReadSamples(t *testing.T) {
	dir := t.TempDir()

	t.Run("mono", func(t *testing.T) {
		path := filepath.Join(dir, "mono.wav")
		writeWav(t, path, 1, []int{0, 16384, -32768})

		samples, rate, err := readSamples(path)
		require.NoError(t, err)
		assert.Equal(t, 16000, rate)
		assert.Equal(t, []float32{0, 0.5, -1}, samples)
	})

	t.Run("stereo is averaged", func(t *testing.T) {
		path := filepath.Join(dir, "stereo.wav")
		writeWav(t, path, 2, []int{16384, 0, -16384, -16384})

		samples, _, err := readSamples(path)
		require.NoError(t, err)
		assert.Equal(t, []float32{0.25, -0.5}, samples)
	})

	t.Run("not a wav", func(t *testing.T) {
		path := filepath.Join(dir, "junk.wav")
		require.NoError(t, os.WriteFile(path, []byte("not riff"), 0644))
		_, _, err := readSamples(path)
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := readSamples(filepath.Join(dir, "nope.wav"))
		assert.Error(t, err)
	})
}

func TestHTTPExtractor(t *testing.T) {
	slice := filepath.Join(t.TempDir(), "slice.wav")
	require.NoError(t, os.WriteFile(slice, []byte("RIFF....WAVE"), 0644))

	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/embed" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			f, hdr, err := r.FormFile("file")
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			defer f.Close()
			body, _ := io.ReadAll(f)
			if hdr.Filename != "slice.wav" || string(body) != "RIFF....WAVE" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{"embedding": []float32{0.5, -0.25, 1}})
		}))
		defer server.Close()

		ex := NewHTTP(server.URL+"/", 0)
		defer ex.Close()

		emb, err := ex.Extract(context.Background(), slice)
		require.NoError(t, err)
		assert.Equal(t, speaker.Embedding{0.5, -0.25, 1}, emb)
		assert.Equal(t, "http", ex.Name())
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := NewHTTP(server.URL, 0).Extract(context.Background(), slice)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model not loaded")
	})

	t.Run("empty embedding", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"embedding": []}`))
		}))
		defer server.Close()

		_, err := NewHTTP(server.URL, 0).Extract(context.Background(), slice)
		assert.ErrorIs(t, err, ErrEmptyEmbedding)
	})

	t.Run("missing slice", func(t *testing.T) {
		_, err := NewHTTP("http://127.0.0.1:1", 0).Extract(context.Background(), filepath.Join(t.TempDir(), "none.wav"))
		assert.Error(t, err)
	})
}
