package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sir_venger/step_drop/internal/app/resthttp"
	"github.com/sir_venger/step_drop/internal/config"
	"github.com/sir_venger/step_drop/pkg/stepclient"
)

func startServer(t *testing.T) (stepclient.Client, string) {
	t.Helper()

	cfg := config.Default()
	cfg.ListenAddr = ":0"
	cfg.UploadDir = filepath.Join(t.TempDir(), "uploads")

	handler, _, err := resthttp.NewServer(cfg)
	if err != nil {
		t.Fatalf("new rest server: %v", err)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return stepclient.New(srv.URL, stepclient.WithHTTPClient(srv.Client())), cfg.UploadDir
}

func TestUploadPartStep(t *testing.T) {
	cli, dir := startServer(t)

	res, err := cli.Upload(context.Background(), "part.step", strings.NewReader("ABC"), 3)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.Filename != "part.step" {
		t.Fatalf("filename = %q", res.Filename)
	}

	got, err := os.ReadFile(filepath.Join(dir, "part.step"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "ABC" {
		t.Fatalf("stored %q, want ABC", got)
	}
}

func TestUploadModelTxtRejected(t *testing.T) {
	cli, dir := startServer(t)

	_, err := cli.Upload(context.Background(), "model.txt", strings.NewReader("ABC"), 3)

	var apiErr *stepclient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "Only .step or .stp files are allowed" {
		t.Fatalf("detail = %q", apiErr.Detail)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("upload dir has %d entries", len(entries))
	}
}

func TestReuploadOverwrites(t *testing.T) {
	cli, dir := startServer(t)
	ctx := context.Background()

	first := bytes.Repeat([]byte("ISO-10303-21;\n"), 4096)
	if _, err := cli.Upload(ctx, "Assembly.STEP", bytes.NewReader(first), int64(len(first))); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	second := []byte("HEADER;ENDSEC;")
	if _, err := cli.Upload(ctx, "Assembly.STEP", bytes.NewReader(second), int64(len(second))); err != nil {
		t.Fatalf("second upload: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "Assembly.STEP"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, second) {
		t.Fatalf("stored %d bytes, want second upload", len(got))
	}
}

func TestHealthUnderConcurrentUploads(t *testing.T) {
	cli, dir := startServer(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, 2*n)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("part-%d.stp", i)
			payload := bytes.Repeat([]byte{byte(i)}, 64<<10)
			if _, err := cli.Upload(ctx, name, bytes.NewReader(payload), int64(len(payload))); err != nil {
				errs <- fmt.Errorf("upload %s: %w", name, err)
			}
		}(i)
		go func() {
			defer wg.Done()
			h, err := cli.Health(ctx)
			if err != nil {
				errs <- err
				return
			}
			if h.Status != "ok" {
				errs <- fmt.Errorf("health status %q", h.Status)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	for i := 0; i < n; i++ {
		got, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("part-%d.stp", i)))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 64<<10 || got[0] != byte(i) {
			t.Fatalf("part-%d.stp corrupted", i)
		}
	}
}
