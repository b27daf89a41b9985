// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/williamjshipman/cppsbom/build"
	"github.com/williamjshipman/cppsbom/build/metadata"
)

// Option is an option to get a config, usually set by command line flags.
type Option struct {
	// Filename is a config filename, relative to the root.
	// If empty, DefaultFilename is used when it exists.
	Filename string

	// ThirdPartyRoots are added to the config's third party roots.
	// Relative paths are relative to the root.
	ThirdPartyRoots StringsFlag

	// IncludeInternal overrides the config if true.
	IncludeInternal bool

	// Manifest overrides the config if not empty.
	Manifest string

	// Workers overrides the config if positive.
	Workers int

	// Flags are passed to `init` as ctx.flags.
	Flags KeyValueFlag
}

// RegisterFlags registers flags for the option.
func (o *Option) RegisterFlags(flagSet *flag.FlagSet) {
	flagSet.StringVar(&o.Filename, "config", "", "config filename (relative to -C). default "+DefaultFilename+" if exists")
	flagSet.Var(&o.ThirdPartyRoots, "third_party", "third party root directory (relative to -C). can be repeated")
	flagSet.BoolVar(&o.IncludeInternal, "include_internal", false, "report dependencies inside the source tree")
	flagSet.StringVar(&o.Manifest, "manifest", "", "manifest filename in each directory. default "+"CMakeLists.txt")
	flagSet.IntVar(&o.Workers, "j", 0, "analyze N units in parallel. when the value is no positive, the default will be computed based on # of CPUs.")
	flagSet.Var(&o.Flags, "config_flag", "key=value passed to config as ctx.flags. can be repeated")
}

// Config returns a config for root, loaded from the config file and
// overridden by the option.
func (o *Option) Config(ctx context.Context, fsys build.FileSystem, root string) (*Config, error) {
	var cfg *Config
	fname := o.Filename
	if fname == "" && fsys.Exists(ctx, filepath.Join(root, DefaultFilename)) {
		fname = DefaultFilename
	}
	if fname != "" {
		if !filepath.IsAbs(fname) {
			fname = filepath.Join(root, fname)
		}
		var err error
		cfg, err = Load(ctx, fsys, fname, root, o.Flags)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", fname, err)
		}
	} else {
		log.Debugf("no config in %s", root)
		cfg = &Config{Metadata: metadata.New()}
	}
	cfg.ThirdPartyRoots = absPaths(root, append(cfg.ThirdPartyRoots, o.ThirdPartyRoots...))
	if o.IncludeInternal {
		cfg.IncludeInternal = true
	}
	if o.Manifest != "" {
		cfg.Manifest = o.Manifest
	}
	if o.Workers > 0 {
		cfg.Workers = o.Workers
	}
	return cfg, nil
}

// StringsFlag is a flag.Value of repeatable string flag.
type StringsFlag []string

func (f *StringsFlag) String() string {
	return strings.Join(*f, ",")
}

// Set appends v.
func (f *StringsFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}

// KeyValueFlag is a flag.Value of repeatable key=value flag.
type KeyValueFlag map[string]string

func (f *KeyValueFlag) String() string {
	keys := make([]string, 0, len(*f))
	for k := range *f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s=%s", k, (*f)[k])
	}
	return sb.String()
}

// Set sets key=value in v.
func (f *KeyValueFlag) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	if !ok || k == "" {
		return fmt.Errorf("want key=value, but got %q", v)
	}
	if *f == nil {
		*f = make(map[string]string)
	}
	(*f)[k] = val
	return nil
}
