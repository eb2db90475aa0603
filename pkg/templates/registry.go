// Package templates resolves template names to template content across
// four tiers: inline registrations, explicit files, searchable
// directories, and embedded framework defaults. Higher tiers shadow
// lower ones, so applications override framework templates just by
// registering their own.
package templates

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/logging"
)

// DefaultExtensions lists the supported template extensions, highest
// priority first. The first entry is the default extension appended to
// derived template names.
var DefaultExtensions = []string{".tmpl", ".gotmpl", ".txt"}

// fileEntry is one file-backed template variant.
type fileEntry struct {
	path    string
	dir     string
	content string
}

// Registry holds templates by resolution name. A resolution name is the
// path-like base name without extension, such as "status" or
// "config/get". Lookup accepts names with or without extension.
//
// Registries are written during setup and read-only afterwards, except
// in dev-reload mode where file-backed templates are re-read per lookup.
type Registry struct {
	exts      []string
	devReload bool

	inline    map[string]string
	files     map[string]map[string]*fileEntry
	dirs      map[string]map[string]*fileEntry
	dirSource map[string]string
	defaults  map[string]map[string]string
}

// Option configures a Registry.
type Option func(*Registry)

// WithExtensions replaces the supported extension list, highest
// priority first.
func WithExtensions(exts ...string) Option {
	return func(r *Registry) {
		if len(exts) > 0 {
			r.exts = exts
		}
	}
}

// WithDevReload makes file-backed lookups re-read from disk, so edits
// show up without restarting.
func WithDevReload(enabled bool) Option {
	return func(r *Registry) {
		r.devReload = enabled
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		exts:      DefaultExtensions,
		inline:    make(map[string]string),
		files:     make(map[string]map[string]*fileEntry),
		dirs:      make(map[string]map[string]*fileEntry),
		dirSource: make(map[string]string),
		defaults:  make(map[string]map[string]string),
	}
	r.Configure(opts...)
	return r
}

// Configure applies options after construction, for setup code that
// receives its registry ready-made.
func (r *Registry) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(r)
	}
}

// DefaultExtension returns the extension appended to derived names.
func (r *Registry) DefaultExtension() string {
	return r.exts[0]
}

// matchExt returns the supported extension name carries, or "".
func (r *Registry) matchExt(name string) string {
	for _, ext := range r.exts {
		if strings.HasSuffix(name, ext) {
			return ext
		}
	}
	return ""
}

// AddInline registers template content under a name. Inline templates
// take priority over every file-backed tier. Re-adding a name replaces
// it.
func (r *Registry) AddInline(name, content string) {
	r.inline[name] = content
}

// AddFile registers one template file. The resolution name is the file's
// base name without extension.
func (r *Registry) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFilesystemRead, "reading template %s", path)
	}
	ext := r.matchExt(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	if r.files[base] == nil {
		r.files[base] = make(map[string]*fileEntry)
	}
	r.files[base][ext] = &fileEntry{path: path, content: string(data)}
	return nil
}

// AddFiles registers several template files, stopping at the first
// failure.
func (r *Registry) AddFiles(paths ...string) error {
	for _, path := range paths {
		if err := r.AddFile(path); err != nil {
			return err
		}
	}
	return nil
}

// AddDir walks dir and registers every template file under it, using
// the slash-separated relative path without extension as the resolution
// name. A missing directory is not an error. Files in different
// directories that resolve to the same name fail with a collision
// listing both sides; within one directory, extension priority picks a
// winner silently.
func (r *Registry) AddDir(dir string) error {
	log := logging.GetLogger("templates")

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		log.Debug().Str("dir", dir).Msg("template directory absent, skipping")
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFilesystemRead, "reading template directory %s", dir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "template path %s is not a directory", dir)
	}

	count := 0
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrFilesystemRead, "walking %s", path)
		}
		if d.IsDir() {
			return nil
		}
		ext := r.matchExt(path)
		if ext == "" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		base := strings.TrimSuffix(filepath.ToSlash(rel), ext)

		if src, taken := r.dirSource[base]; taken && src != dir {
			return errors.Newf(errors.ErrTemplateCollision,
				"template %q found in both %s and %s",
				base, filepath.Join(src, base+r.bestExt(r.dirs[base])), path).
				WithDetail("name", base).
				WithDetail("first_dir", src).
				WithDetail("second_dir", dir)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFilesystemRead, "reading template %s", path)
		}
		if r.dirs[base] == nil {
			r.dirs[base] = make(map[string]*fileEntry)
		}
		r.dirs[base][ext] = &fileEntry{path: path, dir: dir, content: string(data)}
		r.dirSource[base] = dir
		count++
		return nil
	})
	if walkErr != nil {
		return walkErr
	}
	log.Debug().Str("dir", dir).Int("templates", count).Msg("registered template directory")
	return nil
}

// AddDefaultsFS registers framework default templates from an embedded
// filesystem. Defaults sit below every other tier and never collide.
func (r *Registry) AddDefaultsFS(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := r.matchExt(path)
		if ext == "" {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		base := strings.TrimSuffix(path, ext)
		if r.defaults[base] == nil {
			r.defaults[base] = make(map[string]string)
		}
		r.defaults[base][ext] = string(data)
		return nil
	})
}

// bestExt returns the highest-priority extension present in variants.
func (r *Registry) bestExt(variants map[string]*fileEntry) string {
	for _, ext := range r.exts {
		if _, ok := variants[ext]; ok {
			return ext
		}
	}
	return ""
}

// Lookup returns the content for name, or a not-found error. In
// dev-reload mode a stale file read fails with a filesystem error.
func (r *Registry) Lookup(name string) (string, error) {
	if content, entry, ok := r.resolve(name); ok {
		if entry != nil && r.devReload {
			data, err := os.ReadFile(entry.path)
			if err != nil {
				return "", errors.Wrapf(err, errors.ErrFilesystemRead, "reloading template %s", entry.path)
			}
			return string(data), nil
		}
		return content, nil
	}
	return "", errors.Newf(errors.ErrTemplateNotFound, "template %q not found", name)
}

// Resolve returns the content for name and whether it exists. Unlike
// Lookup it never fails: in dev-reload mode an unreadable file falls
// back to the cached content.
func (r *Registry) Resolve(name string) (string, bool) {
	content, entry, ok := r.resolve(name)
	if !ok {
		return "", false
	}
	if entry != nil && r.devReload {
		if data, err := os.ReadFile(entry.path); err == nil {
			return string(data), true
		}
		logging.GetLogger("templates").Warn().
			Str("path", entry.path).
			Msg("template reload failed, using cached content")
	}
	return content, true
}

// Source returns the filesystem path backing name, if any. Inline and
// default templates have no path.
func (r *Registry) Source(name string) (string, bool) {
	_, entry, ok := r.resolve(name)
	if !ok || entry == nil {
		return "", false
	}
	return entry.path, true
}

func (r *Registry) resolve(name string) (string, *fileEntry, bool) {
	if content, ok := r.inline[name]; ok {
		return content, nil, true
	}
	ext := r.matchExt(name)
	base := strings.TrimSuffix(name, ext)
	if base != name {
		if content, ok := r.inline[base]; ok {
			return content, nil, true
		}
	}

	for _, tier := range []map[string]map[string]*fileEntry{r.files, r.dirs} {
		variants, ok := tier[base]
		if !ok {
			continue
		}
		if ext != "" {
			if e, ok := variants[ext]; ok {
				return e.content, e, true
			}
			continue
		}
		if best := r.bestExt(variants); best != "" {
			e := variants[best]
			return e.content, e, true
		}
		// Explicit files may carry extensions outside the supported
		// list; they are stored under their full name.
		if e, ok := variants[""]; ok {
			return e.content, e, true
		}
	}

	if variants, ok := r.defaults[base]; ok {
		if ext != "" {
			if content, ok := variants[ext]; ok {
				return content, nil, true
			}
		} else {
			for _, e := range r.exts {
				if content, ok := variants[e]; ok {
					return content, nil, true
				}
			}
		}
	}
	return "", nil, false
}

// Names returns every resolution name in the registry, sorted.
func (r *Registry) Names() []string {
	seen := make(map[string]struct{})
	for name := range r.inline {
		seen[strings.TrimSuffix(name, r.matchExt(name))] = struct{}{}
	}
	for base := range r.files {
		seen[base] = struct{}{}
	}
	for base := range r.dirs {
		seen[base] = struct{}{}
	}
	for base := range r.defaults {
		seen[base] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
