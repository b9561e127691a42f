package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Ensure makes sure the corpus exists at dest, downloading it from url when
// it is missing. An existing file or directory is left untouched.
func Ensure(ctx context.Context, client *http.Client, url, dest string, logger *zap.Logger) error {
	if _, err := os.Stat(dest); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat corpus: %w", err)
	}

	logger.Info("Corpus not found locally, downloading",
		zap.String("url", url),
		zap.String("dest", dest))

	if err := Download(ctx, client, url, dest); err != nil {
		return err
	}

	logger.Info("Corpus downloaded", zap.String("dest", dest))
	return nil
}

// Download fetches url into dest. The file is written next to dest and
// renamed into place, so a failed download never leaves a partial corpus.
func Download(ctx context.Context, client *http.Client, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download corpus: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("corpus download returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create corpus directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write corpus: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to move corpus into place: %w", err)
	}
	return nil
}
