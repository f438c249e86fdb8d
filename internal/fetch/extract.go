package fetch

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNoEntries is returned when an archive has nothing to extract under the
// requested subdirectory.
var ErrNoEntries = errors.New("archive has no matching entries")

// Options controls which archive entries are written and where.
type Options struct {
	// StripTopLevel removes a single folder that wraps every entry.
	StripTopLevel bool
	// Subdir limits extraction to entries below this slash-separated path,
	// evaluated after stripping. Entries are written relative to it.
	Subdir string
	// Exclude skips any entry with a path element matching one of these
	// names or glob patterns.
	Exclude []string
}

type format int

const (
	formatUnknown format = iota
	formatZip
	formatTarGz
)

// Extract unpacks a .zip, .tar.gz or .tgz archive into destDir. The format is
// detected from the file contents. Entries resolving outside destDir are
// rejected.
func Extract(archivePath, destDir string, opts Options) error {
	f, err := detectFormat(archivePath)
	if err != nil {
		return err
	}

	var names []string
	var walk func(visit visitFunc) error
	switch f {
	case formatZip:
		walk = func(visit visitFunc) error { return walkZip(archivePath, visit) }
	case formatTarGz:
		walk = func(visit visitFunc) error { return walkTarGz(archivePath, visit) }
	default:
		return fmt.Errorf("unsupported archive format: %s", filepath.Base(archivePath))
	}

	prefix := ""
	if opts.StripTopLevel {
		if err := walk(func(name string, _ fs.FileMode, _ bool, _ io.Reader) error {
			names = append(names, name)
			return nil
		}); err != nil {
			return err
		}
		prefix = commonRoot(names)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", destDir, err)
	}

	subdir := strings.Trim(path.Clean("/"+opts.Subdir), "/")
	written := 0
	err = walk(func(name string, mode fs.FileMode, isDir bool, r io.Reader) error {
		rel, ok := relativeName(name, prefix, subdir)
		if !ok || excluded(rel, opts.Exclude) {
			return nil
		}
		target, err := safeJoin(destDir, rel)
		if err != nil {
			return err
		}
		if isDir {
			return os.MkdirAll(target, 0755)
		}
		if err := writeFile(target, mode, r); err != nil {
			return err
		}
		written++
		return nil
	})
	if err != nil {
		return err
	}
	if subdir != "" && written == 0 {
		return fmt.Errorf("%w under %s", ErrNoEntries, subdir)
	}
	return nil
}

func detectFormat(archivePath string) (format, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return formatUnknown, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	magic, err := bufio.NewReader(f).Peek(4)
	if err != nil && len(magic) < 2 {
		return formatUnknown, fmt.Errorf("reading archive header: %w", err)
	}
	switch {
	case len(magic) >= 4 && string(magic[:4]) == "PK\x03\x04":
		return formatZip, nil
	case magic[0] == 0x1f && magic[1] == 0x8b:
		return formatTarGz, nil
	default:
		return formatUnknown, nil
	}
}

// visitFunc receives one archive entry. name is slash-separated and r is nil
// for directories.
type visitFunc func(name string, mode fs.FileMode, isDir bool, r io.Reader) error

func walkZip(archivePath string, visit visitFunc) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening zip archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			if err := visit(f.Name, 0, true, nil); err != nil {
				return err
			}
			continue
		}
		if !f.Mode().IsRegular() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening zip entry %s: %w", f.Name, err)
		}
		err = visit(f.Name, f.Mode(), false, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func walkTarGz(archivePath string, visit visitFunc) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			err = visit(hdr.Name, 0, true, nil)
		case tar.TypeReg:
			err = visit(hdr.Name, fs.FileMode(hdr.Mode).Perm(), false, tr)
		default:
			// PAX headers, links and devices carry no template content.
			continue
		}
		if err != nil {
			return err
		}
	}
}

// commonRoot returns "dir/" when every entry lives under the same top-level
// folder, and "" otherwise.
func commonRoot(names []string) string {
	root := ""
	nested := false
	for _, n := range names {
		n = strings.TrimPrefix(n, "./")
		first, rest, found := strings.Cut(n, "/")
		if first == "" {
			continue
		}
		if root == "" {
			root = first
		} else if first != root {
			return ""
		}
		if found && rest != "" {
			nested = true
		} else if !found {
			// A file at the top level.
			return ""
		}
	}
	if root == "" || !nested {
		return ""
	}
	return root + "/"
}

func relativeName(name, prefix, subdir string) (string, bool) {
	name = strings.TrimPrefix(name, "./")
	if prefix != "" {
		if !strings.HasPrefix(name, prefix) {
			return "", false
		}
		name = strings.TrimPrefix(name, prefix)
	}
	if subdir != "" {
		if !strings.HasPrefix(name, subdir+"/") {
			return "", false
		}
		name = strings.TrimPrefix(name, subdir+"/")
	}
	name = strings.TrimSuffix(name, "/")
	return name, name != ""
}

func excluded(rel string, patterns []string) bool {
	for _, elem := range strings.Split(rel, "/") {
		for _, p := range patterns {
			if p == "" {
				continue
			}
			if ok, _ := path.Match(p, elem); ok || p == elem {
				return true
			}
		}
	}
	return false
}

// safeJoin joins rel onto destDir and rejects results outside destDir.
func safeJoin(destDir, rel string) (string, error) {
	cleanDest := filepath.Clean(destDir)
	target := filepath.Join(cleanDest, filepath.FromSlash(rel))
	if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal file path in archive: %s", rel)
	}
	return target, nil
}

func writeFile(target string, mode fs.FileMode, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	perm := mode.Perm()&0755 | 0600
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return out.Close()
}
