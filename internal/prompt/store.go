// Package prompt loads the system prompt templates used by each workflow.
//
// Templates are Markdown files named <name>.md. Built-in copies are
// embedded in the binary; a directory on disk overrides them file by file.
package prompt

import (
	"embed"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"

	"github.com/felixgeelhaar/promptplay/internal/errors"
	"github.com/felixgeelhaar/promptplay/internal/log"
)

//go:embed templates/*.md
var builtinTemplates embed.FS

// Names of the built-in templates.
const (
	Brainstorm        = "brainstorm"
	IssueScoring      = "issue_scoring"
	TaskDecomposition = "task_decomposition"
	RoleDispatch      = "role_dispatch"
)

// DirEnv names the variable holding the override directory.
const DirEnv = "PROMPTPLAY_PROMPTS_DIR"

// DefaultDir is the override directory used when neither flag nor env is set.
const DefaultDir = "prompts"

const (
	extension     = ".md"
	cacheSize     = 64
	builtinPrefix = "templates"
)

// Source says where a template was read from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceDir     Source = "dir"
)

// Info describes one available template.
type Info struct {
	Name   string `json:"name"`
	Source Source `json:"source"`
	Path   string `json:"path"`
	Digest string `json:"digest"`
	Size   int    `json:"size"`
}

// ShortDigest returns the first 12 hex characters of the digest.
func (i Info) ShortDigest() string {
	if len(i.Digest) > 12 {
		return i.Digest[:12]
	}
	return i.Digest
}

type entry struct {
	info Info
	body string
}

// Store resolves templates by name, override directory first.
type Store struct {
	dir      string
	override fs.FS
	builtin  fs.FS
	cache    *lru.Cache[string, entry]
	logger   *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for template resolution messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithOverrideFS replaces the override directory with fsys.
func WithOverrideFS(fsys fs.FS) Option {
	return func(s *Store) { s.override = fsys }
}

// NewStore creates a store that overrides the built-in templates with
// files from dir. A dir that does not exist is ignored.
func NewStore(dir string, opts ...Option) (*Store, error) {
	cache, err := lru.New[string, entry](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create template cache: %w", err)
	}

	builtin, err := fs.Sub(builtinTemplates, builtinPrefix)
	if err != nil {
		return nil, fmt.Errorf("open built-in templates: %w", err)
	}

	s := &Store{
		dir:     dir,
		builtin: builtin,
		cache:   cache,
		logger:  log.Discard(),
	}
	if dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			s.override = os.DirFS(dir)
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load returns the body of the named template.
func (s *Store) Load(name string) (string, error) {
	e, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	return e.body, nil
}

// Stat returns metadata for the named template.
func (s *Store) Stat(name string) (Info, error) {
	e, err := s.resolve(name)
	if err != nil {
		return Info{}, err
	}
	return e.info, nil
}

// List returns every available template sorted by name. An override
// shadows the built-in template of the same name.
func (s *Store) List() ([]Info, error) {
	names := make(map[string]bool)

	for _, fsys := range []fs.FS{s.builtin, s.override} {
		if fsys == nil {
			continue
		}
		matches, err := doublestar.Glob(fsys, "**/*"+extension)
		if err != nil {
			return nil, fmt.Errorf("list templates: %w", err)
		}
		for _, m := range matches {
			names[strings.TrimSuffix(m, extension)] = true
		}
	}

	infos := make([]Info, 0, len(names))
	for name := range names {
		e, err := s.resolve(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, e.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (s *Store) resolve(name string) (entry, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), extension)
	if !fs.ValidPath(name) || name == "." {
		return entry{}, errors.NewPromptNotFoundError(name)
	}

	if e, ok := s.cache.Get(name); ok {
		return e, nil
	}

	file := name + extension
	if s.override != nil {
		data, err := fs.ReadFile(s.override, file)
		switch {
		case err == nil:
			e := newEntry(name, SourceDir, path.Join(s.dir, file), data)
			s.logger.Debug("using prompt override", "template", name, "path", e.info.Path, "digest", e.info.ShortDigest())
			s.cache.Add(name, e)
			return e, nil
		case !stderrors.Is(err, fs.ErrNotExist):
			return entry{}, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read prompt %s", file), err)
		}
	}

	data, err := fs.ReadFile(s.builtin, file)
	if err != nil {
		return entry{}, errors.NewPromptNotFoundError(name)
	}
	e := newEntry(name, SourceBuiltin, path.Join(builtinPrefix, file), data)
	s.cache.Add(name, e)
	return e, nil
}

func newEntry(name string, src Source, p string, data []byte) entry {
	return entry{
		info: Info{
			Name:   name,
			Source: src,
			Path:   p,
			Digest: Digest(data),
			Size:   len(data),
		},
		body: string(data),
	}
}

// Digest returns the hex blake3 hash of a template body.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
