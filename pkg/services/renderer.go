package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CoverData is everything the renderer needs to produce one cover PDF.
type CoverData struct {
	Layout        string `json:"layout"`
	PaperSize     string `json:"paper_size"`
	Title         string `json:"title"`
	Subject       string `json:"subject"`
	LogoURL       string `json:"logo_url,omitempty"`
	AuthorName    string `json:"author_name"`
	StudentNumber string `json:"student_number,omitempty"`
	University    string `json:"university,omitempty"`
	Faculty       string `json:"faculty,omitempty"`
	Program       string `json:"program,omitempty"`
	ClassName     string `json:"class_name,omitempty"`
	Lecturer      string `json:"lecturer,omitempty"`
}

// Renderer turns cover data into PDF bytes. The real implementation is a
// separate headless-browser service.
type Renderer interface {
	Render(ctx context.Context, data CoverData) ([]byte, error)
}

// HTTPRenderer calls the external render service.
type HTTPRenderer struct {
	baseURL string
	client  *http.Client
}

func NewHTTPRenderer(baseURL string) *HTTPRenderer {
	return &HTTPRenderer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *HTTPRenderer) Render(ctx context.Context, data CoverData) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal render request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/render", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("renderer returned status %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

// MockRenderer is used in development when RENDERER_URL is unset. It emits a
// placeholder document so the pipeline can be exercised end to end.
type MockRenderer struct{}

func (MockRenderer) Render(_ context.Context, data CoverData) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n% mock cover\n")
	fmt.Fprintf(&b, "%% title: %s\n%% author: %s\n", data.Title, data.AuthorName)
	return b.Bytes(), nil
}
