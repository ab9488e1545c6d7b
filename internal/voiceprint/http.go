package voiceprint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-scribe/internal/speaker"
)

type embedResp struct {
	Embedding []float32 `json:"embedding"`
}

type httpExtractor struct {
	baseURL string
	client  *http.Client
}

// NewHTTP creates an Extractor that posts each slice to <baseURL>/embed as
// multipart field "file" and expects {"embedding": [...]} back.
func NewHTTP(baseURL string, timeout time.Duration) Extractor {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 2 * time.Minute,
		}).DialContext,
		MaxIdleConns:        64,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     2 * time.Minute,
	}
	return &httpExtractor{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Transport: tr, Timeout: timeout},
	}
}

func (h *httpExtractor) Name() string {
	return "http"
}

func (h *httpExtractor) Extract(ctx context.Context, wavPath string) (speaker.Embedding, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	fw, err := w.CreateFormFile("file", filepath.Base(wavPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	fd, err := os.Open(wavPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", wavPath, err)
	}
	defer fd.Close()
	if _, err := io.Copy(fw, fd); err != nil {
		return nil, fmt.Errorf("copy audio: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/embed", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		const maxErr = 4096
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErr))
		return nil, fmt.Errorf("embed %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out embedResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("embed decode: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return speaker.Embedding(out.Embedding), nil
}

func (h *httpExtractor) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
