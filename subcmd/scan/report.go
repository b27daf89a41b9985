// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scan

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/williamjshipman/cppsbom/build"
	"github.com/williamjshipman/cppsbom/build/buildconfig"
	"github.com/williamjshipman/cppsbom/build/cmakebuild"
	"github.com/williamjshipman/cppsbom/build/metadata"
)

// report is the JSON output of scan.
type report struct {
	Project     string                  `json:"project"`
	Root        string                  `json:"root"`
	ScanID      string                  `json:"scan_id"`
	Metadata    metadata.Metadata       `json:"metadata"`
	Units       []unitReport            `json:"units"`
	Diagnostics []cmakebuild.Diagnostic `json:"diagnostics"`
}

type unitReport struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Dir          string             `json:"dir"`
	Dependencies []build.Dependency `json:"dependencies"`
}

func newReport(g *cmakebuild.Graph, scanID string, cfg *buildconfig.Config, analyses []build.Analysis) *report {
	rep := &report{
		Project:     g.Project,
		Root:        g.Root,
		ScanID:      scanID,
		Metadata:    cfg.Metadata,
		Units:       make([]unitReport, 0, len(analyses)),
		Diagnostics: g.Diagnostics(),
	}
	if rep.Diagnostics == nil {
		rep.Diagnostics = []cmakebuild.Diagnostic{}
	}
	for _, a := range analyses {
		deps := a.Deps
		if !cfg.IncludeInternal {
			deps = build.FilterInternal(deps)
		}
		if deps == nil {
			deps = []build.Dependency{}
		}
		rep.Units = append(rep.Units, unitReport{
			ID:           a.Unit.ID,
			Name:         a.Unit.Name,
			Dir:          a.Unit.Dir,
			Dependencies: deps,
		})
	}
	return rep
}

func (r *report) numDeps() int {
	n := 0
	for _, u := range r.Units {
		n += len(u.Dependencies)
	}
	return n
}

// write writes the report in fname, or stdout if fname is empty or "-".
func (r *report) write(fname string) error {
	buf, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	buf = append(buf, '\n')
	if fname == "" || fname == "-" {
		_, err = os.Stdout.Write(buf)
		return err
	}
	err = os.WriteFile(fname, buf, 0644)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
