// Package archive unpacks the zipped dataset into scratch storage.
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"eyeset/internal/logging"
)

// ErrUnsafePath marks an archive entry whose name would land outside the
// extraction directory (absolute paths or ".." traversal).
var ErrUnsafePath = errors.New("unsafe archive entry path")

// Stats summarizes archive contents.
type Stats struct {
	Files int `json:"files"`
	Dirs  int `json:"dirs"`
	// Bytes is the total uncompressed size of all file entries.
	Bytes uint64 `json:"bytes"`
}

// Inspect reads the central directory of the archive without extracting it.
func Inspect(archivePath string) (Stats, error) {
	zr, err := openReader(archivePath)
	if err != nil {
		return Stats{}, err
	}
	defer zr.Close()

	var stats Stats
	for _, file := range zr.File {
		if file.FileInfo().IsDir() {
			stats.Dirs++
			continue
		}
		stats.Files++
		stats.Bytes += file.UncompressedSize64
	}
	return stats, nil
}

// Extract unpacks every entry of archivePath beneath destDir, which must
// already exist. Existing files are overwritten. Extraction stops at the first
// failure; files written so far are left for the caller to clean up.
func Extract(ctx context.Context, archivePath, destDir string, logger *slog.Logger) (Stats, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	zr, err := openReader(archivePath)
	if err != nil {
		return Stats{}, err
	}
	defer zr.Close()

	root, err := filepath.Abs(destDir)
	if err != nil {
		return Stats{}, fmt.Errorf("resolve extraction dir: %w", err)
	}

	var stats Stats
	for _, file := range zr.File {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		target, err := entryPath(root, file.Name)
		if err != nil {
			return stats, err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return stats, fmt.Errorf("create directory %s: %w", file.Name, err)
			}
			stats.Dirs++
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return stats, fmt.Errorf("create parent for %s: %w", file.Name, err)
		}
		written, err := extractFile(file, target)
		if err != nil {
			return stats, err
		}
		stats.Files++
		stats.Bytes += uint64(written)
	}

	logger.Debug("archive extracted",
		logging.String("archive", archivePath),
		logging.Int("files", stats.Files),
		logging.Int("dirs", stats.Dirs),
		logging.Size("bytes", stats.Bytes),
	)
	return stats, nil
}

// openReader opens the archive, folding the standard library's insecure path
// report (GODEBUG zipinsecurepath=0) into ErrUnsafePath.
func openReader(archivePath string) (*zip.ReadCloser, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		if zr != nil {
			_ = zr.Close()
		}
		if errors.Is(err, zip.ErrInsecurePath) {
			return nil, fmt.Errorf("%w: %w", ErrUnsafePath, err)
		}
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return zr, nil
}

func entryPath(root, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	target := filepath.Join(root, cleaned)
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return target, nil
}

func extractFile(file *zip.File, target string) (int64, error) {
	rc, err := file.Open()
	if err != nil {
		return 0, fmt.Errorf("open entry %s: %w", file.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", target, err)
	}
	defer func() {
		_ = out.Close()
	}()

	written, err := io.Copy(out, rc)
	if err != nil {
		return written, fmt.Errorf("write %s: %w", file.Name, err)
	}
	if err := out.Close(); err != nil {
		return written, fmt.Errorf("close %s: %w", target, err)
	}
	return written, nil
}
