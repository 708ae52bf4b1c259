package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Diokuz/optional-keys-in-objects/pkg/parser"
)

// Options configures the transpiler output.
type Options struct {
	// OutSuffix replaces the input extension when no explicit output path
	// is given (e.g. "demo.js" -> "demo.out.js").
	OutSuffix string `yaml:"outSuffix"`
	// Indent is the number of spaces per indentation level inside lowered
	// object builders.
	Indent int `yaml:"indent"`
	// TempPrefix prefixes generated temporaries in the lowered output.
	TempPrefix string `yaml:"tempPrefix"`
	// TypeofChecks switches the undefined check to a typeof comparison.
	TypeofChecks bool `yaml:"typeofChecks"`
}

// DefaultOptions returns the options used when no config file is present.
func DefaultOptions() Options {
	return Options{
		OutSuffix:  ".out.js",
		Indent:     2,
		TempPrefix: "__",
	}
}

// LoadOptions reads options from a YAML config file, filling unset fields
// with defaults. A missing file is not an error; explicit paths that do not
// exist are.
func LoadOptions(path string, explicit bool) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return opts, nil
		}
		return opts, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse config %s: %w", path, err)
	}
	if opts.OutSuffix == "" {
		opts.OutSuffix = ".out.js"
	}
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	if opts.TempPrefix == "" {
		opts.TempPrefix = "__"
	}
	return opts, nil
}

// OutputPath derives the default output path for an input file.
func OutputPath(inPath string, opts Options) string {
	ext := filepath.Ext(inPath)
	return strings.TrimSuffix(inPath, ext) + opts.OutSuffix
}

func (o Options) emitterOptions() parser.EmitterOptions {
	return parser.EmitterOptions{
		Indent:       strings.Repeat(" ", o.Indent),
		TempPrefix:   o.TempPrefix,
		TypeofChecks: o.TypeofChecks,
	}
}
