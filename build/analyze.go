// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package build

import (
	"context"

	log "github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/williamjshipman/cppsbom/o11y/clog"
	"github.com/williamjshipman/cppsbom/sync/semaphore"
)

// Analysis is the result of analyzing a build unit.
type Analysis struct {
	Unit *BuildUnit
	Deps []Dependency
}

// AnalyzeAll analyzes units by r using workers concurrently.
// Results are in the order of units.
func AnalyzeAll(ctx context.Context, r *Resolver, units []*BuildUnit, workers int) ([]Analysis, error) {
	sema := semaphore.New("analyze", workers)
	results := make([]Analysis, len(units))
	eg, ctx := errgroup.WithContext(ctx)
	for i, u := range units {
		results[i].Unit = u
		eg.Go(func() error {
			return sema.Do(ctx, func(ctx context.Context) error {
				deps, err := r.Analyze(ctx, u)
				if err != nil {
					return err
				}
				results[i].Deps = deps
				return nil
			})
		})
	}
	err := eg.Wait()
	if log.V(1) {
		clog.Infof(ctx, "%v", sema.Stats())
	}
	if err != nil {
		clog.Warningf(ctx, "analyze: %v", err)
		return nil, err
	}
	return results, nil
}
