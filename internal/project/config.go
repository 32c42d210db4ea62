package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"strcheck/internal/lint"
)

// ErrInvalidConfig wraps every decoding and validation failure of strcheck.toml.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config mirrors strcheck.toml.
type Config struct {
	Check CheckConfig `toml:"check"`
	Rules RulesConfig `toml:"rules"`
}

type CheckConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	// Jobs limits parallel file checks; 0 means GOMAXPROCS.
	Jobs             int  `toml:"jobs"`
	MaxDiagnostics   int  `toml:"max-diagnostics"`
	WarningsAsErrors bool `toml:"warnings-as-errors"`
}

type RulesConfig struct {
	// Disable lists rule ids or codes.
	Disable []string `toml:"disable"`
}

// Default returns the configuration used when no strcheck.toml exists.
func Default() Config {
	return Config{
		Check: CheckConfig{
			Include:        []string{"**/*.cs"},
			Exclude:        []string{"bin/**", "obj/**"},
			MaxDiagnostics: 200,
		},
	}
}

// Manifest is a decoded strcheck.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
	meta   toml.MetaData
}

// Defined reports whether the file sets key, e.g. Defined("check", "jobs").
// Flags use it to decide whether a file value overrides their default.
func (m *Manifest) Defined(key ...string) bool {
	if m == nil {
		return false
	}
	return m.meta.IsDefined(key...)
}

// Load finds and decodes the strcheck.toml above start. Without one it
// returns a nil manifest and the default configuration.
func Load(start string) (*Manifest, Config, error) {
	path, ok, err := FindConfig(start)
	if err != nil {
		return nil, Default(), err
	}
	if !ok {
		return nil, Default(), nil
	}
	m, err := LoadFile(path)
	if err != nil {
		return nil, Default(), err
	}
	return m, m.Config, nil
}

// LoadFile decodes path over the defaults and validates the result.
func LoadFile(path string) (*Manifest, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w: %w", path, ErrInvalidConfig, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys %s: %w", path, strings.Join(keys, ", "), ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
		meta:   meta,
	}, nil
}

// Validate checks numeric limits and glob syntax. Unknown rule names are not
// an error here; see UnknownRules.
func (c Config) Validate() error {
	var errs []error
	if c.Check.Jobs < 0 {
		errs = append(errs, fmt.Errorf("[check].jobs must not be negative (got %d)", c.Check.Jobs))
	}
	if c.Check.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("[check].max-diagnostics must not be negative (got %d)", c.Check.MaxDiagnostics))
	}
	for _, list := range [][]string{c.Check.Include, c.Check.Exclude} {
		for _, pattern := range list {
			if !doublestar.ValidatePattern(pattern) {
				errs = append(errs, fmt.Errorf("bad glob %q", pattern))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// UnknownRules returns the names in [rules].disable that match no rule.
func (c Config) UnknownRules() []string {
	var out []string
	for _, name := range c.Rules.Disable {
		if _, ok := lint.Lookup(name); !ok {
			out = append(out, name)
		}
	}
	return out
}

const defaultConfigText = `# strcheck configuration
[check]
include = ["**/*.cs"]
exclude = ["bin/**", "obj/**"]
# 0 - по числу CPU
jobs = 0
max-diagnostics = 200
warnings-as-errors = false

[rules]
# ids or codes, e.g. "explicit-conversion" or "STR4002"
disable = []
`

// WriteDefault creates strcheck.toml in dir and fails if one already exists.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, ConfigFileName)
	// #nosec G304 -- dir comes from the command line
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return path, fmt.Errorf("%s already exists", path)
		}
		return path, fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.WriteString(defaultConfigText); err != nil {
		_ = f.Close()
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}
