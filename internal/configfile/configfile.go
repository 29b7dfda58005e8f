// Package configfile owns discovery and decoding of dfixxer.toml files —
// the on-disk side of pkg/config's pure-data Options (SPEC_FULL's
// "Configuration" ambient-stack section, spec §6 "Configuration file
// format"). pkg/config itself never touches a filesystem.
package configfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tuncb/dfixxer/pkg/config"
)

// FileName is the configuration file name discovery walks upward for.
const FileName = "dfixxer.toml"

// Load resolves the effective Options for targetPath: it starts from
// config.DefaultConfig(), applies a custom_config_patterns override when
// targetPath matches one of the patterns in an already-loaded base config
// (if baseForPatterns is non-nil), otherwise walks targetPath's directory
// upward to the nearest dfixxer.toml, decodes it over the defaults, and
// validates the result.
func Load(targetPath string, baseForPatterns *config.Options) (*config.Options, error) {
	if baseForPatterns != nil {
		if override, ok := matchCustomPattern(targetPath, baseForPatterns.CustomConfigPatterns); ok {
			return decodeFile(override)
		}
	}

	dir := filepath.Dir(targetPath)
	path, found, err := discover(dir)
	if err != nil {
		return nil, err
	}
	if !found {
		return config.DefaultConfig(), nil
	}
	return decodeFile(path)
}

// discover walks from dir upward to the filesystem root looking for
// FileName, returning the first match.
func discover(dir string) (string, bool, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false, fmt.Errorf("configfile: resolving %q: %w", dir, err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// decodeFile decodes path over config.DefaultConfig()'s values, so any
// field the file omits keeps its built-in default, then validates it.
func decodeFile(path string) (*config.Options, error) {
	opts := config.DefaultConfig()
	if _, err := toml.DecodeFile(path, opts); err != nil {
		return nil, fmt.Errorf("configfile: decoding %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("configfile: %s: %w", path, err)
	}
	return opts, nil
}

func matchCustomPattern(targetPath string, patterns map[string]string) (string, bool) {
	for pattern, overridePath := range patterns {
		matched, err := filepath.Match(pattern, filepath.Base(targetPath))
		if err == nil && matched {
			return overridePath, true
		}
		if matched2, err2 := filepath.Match(pattern, targetPath); err2 == nil && matched2 {
			return overridePath, true
		}
	}
	return "", false
}

// WriteDefault scaffolds a fully-commented default dfixxer.toml at path,
// refusing to overwrite an existing file unless force is true (SPEC_FULL's
// "init-config scaffolding").
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configfile: %s already exists (use --force to overwrite)", path)
		}
	}
	return os.WriteFile(path, []byte(defaultConfigTOML), 0o644)
}

const defaultConfigTOML = `# dfixxer configuration.
# Every field is optional; an omitted field falls back to its built-in
# default, which is the value written for it here.

# Indentation used for continuation lines of a reformatted uses section.
indentation = "  "

# One of "auto", "crlf", "lf". "auto" resolves to the host platform's
# conventional line ending for newly introduced line breaks.
line_ending = "auto"

[uses_section]
# One of "comma_at_end", "comma_at_beginning".
style = "comma_at_end"

# Namespace prefixes that sort before any non-matching unit, in priority order.
priority_prefixes = ["System", "Vcl", "FMX"]

# Short unit name -> qualifying prefix, e.g. { Classes = "System" } rewrites
# "Classes" to "System.Classes".
[uses_section.name_rewrites]

[transformations]
uses_section = true
unit_program = true
single_keyword_sections = true
procedure_section = true
text = true

[text_changes]
# Each of the following is one of "no_change", "before", "after",
# "before_and_after".
comma  = "after"
semi   = "after"
colon  = "after"
eq     = "no_change"
assign = "before_and_after"
add    = "before_and_after"
sub    = "before_and_after"
mul    = "before_and_after"
div    = "before_and_after"
lt     = "before_and_after"
gt     = "before_and_after"
le     = "before_and_after"
ge     = "before_and_after"
ne     = "before_and_after"

colon_numeric_exception = true
space_inside_brace_comments = true
space_inside_paren_star_comments = true
space_after_line_comment_slashes = true
trim_trailing_whitespace = true

# Glob pattern (matched against a file's base name or full path) -> path to
# an alternate config file, overriding discovery for matching files.
[custom_config_patterns]
`
