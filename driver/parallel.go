//  Copyright (c) 2024 The pdgraph Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package driver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pdgraph/pdgraph/depgraph"
)

// Unit is one compilation unit to analyze: Name identifies it for error reporting (typically a
// file path), Source is its raw text.
type Unit struct {
	Name   string
	Source string
}

// UnitPDG is one compilation unit's analysis outcome: either a populated PDGs slice, or Err if
// that unit's analysis failed. A failure in one unit never aborts the others.
type UnitPDG struct {
	Unit Unit
	PDGs []MethodResult[*depgraph.PDG]
	Err  error
}

// AnalyzeAll runs GetPDG over every unit in units concurrently, since analysis of distinct
// compilation units is embarrassingly parallel (analysis within one unit stays single-threaded).
// It returns one UnitPDG per input unit, in input order, regardless of which unit's goroutine
// finished first. A per-unit error is recorded on that unit's result rather than failing the
// whole batch, and a canceled ctx is likewise recorded as the Err of each unit not yet started;
// AnalyzeAll's own returned error is always nil.
func (d *Driver) AnalyzeAll(ctx context.Context, units []Unit) ([]UnitPDG, error) {
	results := make([]UnitPDG, len(units))
	g, gctx := errgroup.WithContext(ctx)

	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = UnitPDG{Unit: u, Err: err}
				return nil
			}
			pdgs, err := d.GetPDG(u.Source)
			results[i] = UnitPDG{Unit: u, PDGs: pdgs, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
