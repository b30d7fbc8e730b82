// Package archive builds Walk abstraction on top of "archive/zip" for going
// through article collections.
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk. The file argument is the zip.File structure for file in archive which
// satisfies match condition, name is its entry name after code page
// conversion. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File, name string) error

// Walk walks all the files in the archive under the path prefix "pattern",
// calling walkFn for each item. Entries with path traversal components ("..")
// or absolute paths fail the walk to prevent Zip Slip attacks. Directory
// entries and macOS resource fork droppings are skipped. When cp is set,
// non UTF-8 entry names are converted before prefix matching and before being
// handed to walkFn.
func Walk(archive, pattern string, cp encoding.Encoding, log *zap.Logger, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := EntryName(f, cp, log)
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || isResourceFork(name) {
			continue
		}
		if !strings.HasPrefix(name, pattern) {
			continue
		}
		if err := walkFn(archive, f, name); err != nil {
			return err
		}
	}
	return nil
}

// EntryName returns the entry name converted from the forced code page when
// the header says it is not UTF-8. Zip "standard" does not define file name
// encoding, old archives carry whatever the packer's locale was. A name which
// cannot be converted is returned as is with a warning.
func EntryName(f *zip.File, cp encoding.Encoding, log *zap.Logger) string {
	name := f.FileHeader.Name
	if cp == nil || !f.FileHeader.NonUTF8 {
		return name
	}
	n, err := cp.NewDecoder().String(name)
	if err != nil {
		label, _ := ianaindex.IANA.Name(cp)
		log.Warn("Unable to convert archive entry name from specified encoding",
			zap.String("charset", label), zap.String("path", name), zap.Error(err))
		return name
	}
	return n
}

// isResourceFork flags AppleDouble entries archives made on macOS carry
// along. They tend to keep the article extension while holding binary data.
func isResourceFork(name string) bool {
	return name == "__MACOSX" || strings.HasPrefix(name, "__MACOSX/") ||
		strings.HasPrefix(path.Base(name), "._")
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
