package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// CopyFile streams src to dst, truncating any existing dst, with mode 0o644.
func CopyFile(src, dst string) error {
	return copyStream(src, dst, 0o644)
}

// CopyFilePreserve streams src to dst and then carries over the source
// permission bits and modification time. An existing dst is overwritten.
func CopyFilePreserve(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if err := copyStream(src, dst, info.Mode().Perm()); err != nil {
		return err
	}
	return preserveMetadata(dst, info)
}

// CopyFileVerified behaves like CopyFilePreserve but hashes both sides of the
// copy and checks the written size. Removes dst on mismatch.
func CopyFileVerified(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	written, err := copyStreamCounted(src, dst, info.Mode().Perm(), srcHasher, dstHasher)
	if err != nil {
		return err
	}

	if written != info.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}
	return preserveMetadata(dst, info)
}

func copyStream(src, dst string, mode os.FileMode) error {
	_, err := copyStreamCounted(src, dst, mode, nil, nil)
	return err
}

func copyStreamCounted(src, dst string, mode os.FileMode, srcTap, dstTap io.Writer) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = out.Close()
	}()

	var reader io.Reader = in
	if srcTap != nil {
		reader = io.TeeReader(in, srcTap)
	}
	var writer io.Writer = out
	if dstTap != nil {
		writer = io.MultiWriter(out, dstTap)
	}

	written, err := io.Copy(writer, reader)
	if err != nil {
		return written, err
	}
	return written, out.Close()
}

func preserveMetadata(dst string, info os.FileInfo) error {
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("preserve mode: %w", err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("preserve mtime: %w", err)
	}
	return nil
}
