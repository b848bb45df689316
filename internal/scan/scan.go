package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind discriminates how a source is converted.
type Kind int

const (
	// KindImage is a single-image source producing one output file.
	KindImage Kind = iota
	// KindDocument is a multi-page source producing one output per page.
	KindDocument
)

func (k Kind) String() string {
	if k == KindDocument {
		return "document"
	}
	return "image"
}

// Source is one discovered convertible file.
type Source struct {
	// Path is the absolute path on disk.
	Path string
	// RelPath is the path relative to the scanned root.
	RelPath string
	// Stem is the filename without directory or extension; naming starts here.
	Stem string
	// Kind says whether the file converts as an image or page by page.
	Kind Kind
}

// imageExtensions are the single-image input types.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".bmp":  {},
	".gif":  {},
}

// documentExtensions are the multi-page input types.
var documentExtensions = map[string]struct{}{
	".pdf": {},
}

// KindForExt reports the conversion kind for an extension (with dot,
// case-insensitive) and whether it is supported at all.
func KindForExt(ext string) (Kind, bool) {
	ext = strings.ToLower(ext)
	if _, ok := imageExtensions[ext]; ok {
		return KindImage, true
	}
	if _, ok := documentExtensions[ext]; ok {
		return KindDocument, true
	}
	return KindImage, false
}

// Options controls a scan.
type Options struct {
	// Extensions restricts discovery to this set (dots included, any case).
	// Empty means every supported extension.
	Extensions []string
	// Exclude drops files whose root-relative path matches any of these
	// doublestar globs.
	Exclude []string
	// SkipDir is skipped entirely when encountered inside the tree. The
	// conversion run points this at the output directory so a nested output
	// folder is never re-ingested.
	SkipDir string
}

// Walk returns the convertible files under root in deterministic (sorted)
// order.
func Walk(root string, opts Options) ([]Source, error) {
	wanted, err := extensionSet(opts.Extensions)
	if err != nil {
		return nil, err
	}
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	skipDir := absSkipDir(opts.SkipDir)

	var sources []Source
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if skipDir != "" && sameDir(skipDir, path) {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := wanted[ext]; !ok {
			return nil
		}
		kind, supported := KindForExt(ext)
		if !supported {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		for _, pattern := range opts.Exclude {
			if matched, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); matched {
				return nil
			}
		}

		name := entry.Name()
		sources = append(sources, Source{
			Path:    path,
			RelPath: rel,
			Stem:    strings.TrimSuffix(name, filepath.Ext(name)),
			Kind:    kind,
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan %s: %w", root, walkErr)
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

// Resolve classifies one path under root with the same rules Walk applies.
// The boolean is false when the file is not a convertible source.
func Resolve(root, path string, opts Options) (Source, bool, error) {
	wanted, err := extensionSet(opts.Extensions)
	if err != nil {
		return Source{}, false, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := wanted[ext]; !ok {
		return Source{}, false, nil
	}
	kind, supported := KindForExt(ext)
	if !supported {
		return Source{}, false, nil
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return Source{}, false, err
	}
	if strings.HasPrefix(rel, "..") {
		return Source{}, false, nil
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") {
			return Source{}, false, nil
		}
	}
	if skipDir := absSkipDir(opts.SkipDir); skipDir != "" {
		if pathAbs, err := filepath.Abs(path); err == nil {
			if skipRel, err := filepath.Rel(skipDir, pathAbs); err == nil && !strings.HasPrefix(skipRel, "..") {
				return Source{}, false, nil
			}
		}
	}
	for _, pattern := range opts.Exclude {
		if matched, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); matched {
			return Source{}, false, nil
		}
	}

	name := filepath.Base(path)
	return Source{
		Path:    path,
		RelPath: rel,
		Stem:    strings.TrimSuffix(name, filepath.Ext(name)),
		Kind:    kind,
	}, true, nil
}

// absSkipDir canonicalizes the skip directory so relative or uncleaned
// spellings still match the walked paths.
func absSkipDir(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return ""
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Clean(dir)
	}
	return abs
}

func sameDir(skipDir, path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path) == skipDir
	}
	return abs == skipDir
}

func extensionSet(extensions []string) (map[string]struct{}, error) {
	if len(extensions) == 0 {
		set := make(map[string]struct{}, len(imageExtensions)+len(documentExtensions))
		for ext := range imageExtensions {
			set[ext] = struct{}{}
		}
		for ext := range documentExtensions {
			set[ext] = struct{}{}
		}
		return set, nil
	}

	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, ok := KindForExt(normalized); !ok {
			return nil, fmt.Errorf("unsupported extension %q", ext)
		}
		set[normalized] = struct{}{}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no usable extensions in %v", extensions)
	}
	return set, nil
}
