// Package packager bundles exported page files and the metadata descriptor
// into a single zip archive, and extracts them again on restore.
package packager

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/keeperbackup/internal/backup/archiver"
	"github.com/dmitrijs2005/keeperbackup/internal/backup/meta"
)

var (
	// ErrPackaging wraps any zip or unzip failure.
	ErrPackaging = errors.New("packaging failed")
	// ErrMetadataMissing is returned when an archive extracts cleanly but
	// holds no metadata descriptor.
	ErrMetadataMissing = errors.New("archive has no metadata file")
)

// maxEntrySize caps the uncompressed size of a single archive entry.
var maxEntrySize int64 = 512 << 20

// Extracted lists the files unpacked from an archive.
type Extracted struct {
	Metadata string
	// Pages maps a table name to its page files.
	Pages map[string][]string
}

func fail(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPackaging, fmt.Sprintf(format, args...))
}

// Zip writes files into a new archive at dst. Entries are named after the
// base name of each file and stored in name order.
func Zip(ctx context.Context, files []string, dst string) (err error) {
	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b string) int {
		return strings.Compare(filepath.Base(a), filepath.Base(b))
	})

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fail("create %s: %v", filepath.Base(dst), err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fail("close %s: %v", filepath.Base(dst), cerr)
		}
	}()

	zw := zip.NewWriter(out)

	for i, path := range sorted {
		if err := ctx.Err(); err != nil {
			_ = zw.Close()
			return err
		}

		name := filepath.Base(path)
		if i > 0 && filepath.Base(sorted[i-1]) == name {
			_ = zw.Close()
			return fail("duplicate entry %s", name)
		}

		if err := addFile(zw, path, name); err != nil {
			_ = zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fail("finish archive: %v", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	in, err := os.Open(path)
	if err != nil {
		return fail("open %s: %v", name, err)
	}
	defer in.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fail("add %s: %v", name, err)
	}

	if _, err := io.Copy(w, in); err != nil {
		return fail("write %s: %v", name, err)
	}
	return nil
}

// Unzip extracts the archive at src into dir. Every entry must be either the
// metadata descriptor or a table page; anything else fails the extraction.
// An archive without the descriptor yields ErrMetadataMissing.
func Unzip(ctx context.Context, src, dir string) (*Extracted, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, fail("open %s: %v", filepath.Base(src), err)
	}
	defer func() { _ = r.Close() }()

	res := &Extracted{Pages: make(map[string][]string)}
	seen := make(map[string]bool, len(r.File))

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := f.Name
		if f.FileInfo().IsDir() || !safeName(name) {
			return nil, fail("unexpected entry %q", name)
		}
		if seen[name] {
			return nil, fail("duplicate entry %q", name)
		}
		seen[name] = true

		table, _, isPage := archiver.ParsePageName(name)
		if name != meta.FileName && !isPage {
			return nil, fail("unexpected entry %q", name)
		}

		path := filepath.Join(dir, name)
		if err := extract(f, path); err != nil {
			return nil, err
		}

		if isPage {
			res.Pages[table] = append(res.Pages[table], path)
		} else {
			res.Metadata = path
		}
	}

	if res.Metadata == "" {
		return res, ErrMetadataMissing
	}
	return res, nil
}

func safeName(name string) bool {
	return name != "" &&
		name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\:`) &&
		filepath.Base(name) == name
}

func extract(f *zip.File, path string) error {
	if f.UncompressedSize64 > uint64(maxEntrySize) {
		return fail("entry %s exceeds %d bytes", f.Name, maxEntrySize)
	}

	rc, err := f.Open()
	if err != nil {
		return fail("open entry %s: %v", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fail("create %s: %v", f.Name, err)
	}
	defer out.Close()

	n, err := io.Copy(out, io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return fail("extract %s: %v", f.Name, err)
	}
	if n > maxEntrySize {
		return fail("entry %s exceeds %d bytes", f.Name, maxEntrySize)
	}
	return nil
}
