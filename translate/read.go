package translate

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// ReadFile returns the contents of the named input. The file is memory
// mapped and copied; files ending in ".gz" are decompressed.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if info.Size() == 0 {
		return "", nil // empty files cannot be mapped
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	defer mm.Unmap()

	if !strings.HasSuffix(path, ".gz") {
		return string(mm), nil
	}
	gz, err := gzip.NewReader(bytes.NewReader(mm))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	defer gz.Close()
	var b strings.Builder
	if _, err := io.Copy(&b, gz); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return b.String(), nil
}
