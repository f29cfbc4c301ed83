// Copyright 2025 Florian Zenker (flo@znkr.io)
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

// Package impl dispatches a comparison to one of the solvers after reducing the problem size.
package impl

import (
	"fmt"

	"github.com/arka816/minigit/internal/config"
	"github.com/arka816/minigit/internal/lcs"
	"github.com/arka816/minigit/internal/myers"
	"github.com/arka816/minigit/internal/rvecs"
)

// Diff compares the contents of x and y and returns result vectors that describe a minimal edit
// script. The solver is taken from cfg or, if cfg doesn't select one, fallback.
func Diff[T comparable](x, y []T, cfg config.Config, fallback config.Solver) (rx, ry []bool) {
	rx, ry = rvecs.Make(len(x), len(y))

	smin, smax, tmin, tmax := findChangeBounds(x, y)
	if handleTrivialBounds(rx, ry, smin, smax, tmin, tmax) {
		return
	}

	// Solve the reduced problem on integer IDs and map the result back.
	x0, y0, xidx, yidx := preprocess(rx, ry, smin, smax, tmin, tmax, x, y)
	rx0, ry0 := rvecs.Make(len(x0), len(y0))

	switch solver := cfg.Pick(fallback); solver {
	case config.SolverMyers:
		if !myers.Diff(x0, y0, rx0, ry0, cfg.CostLimit) {
			// Too expensive to keep the trace, the linear space solver finds an equally short
			// script.
			lcs.Diff(x0, y0, rx0, ry0)
		}
	case config.SolverHirschberg:
		lcs.Diff(x0, y0, rx0, ry0)
	default:
		panic(fmt.Sprintf("unknown solver: %v", solver))
	}

	for s, r := range rx0[:len(x0)] {
		if r {
			rx[xidx[s]] = true
		}
	}
	for t, r := range ry0[:len(y0)] {
		if r {
			ry[yidx[t]] = true
		}
	}
	return rx, ry
}

// findChangeBounds returns the upper and lower bounds for the changed portion of the inputs.
func findChangeBounds[T comparable](x, y []T) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	return
}

// handleTrivialBounds handles bounds where at least one side is empty. It returns true if the
// bounds were trivial.
func handleTrivialBounds(rx, ry []bool, smin, smax, tmin, tmax int) bool {
	if smin != smax && tmin != tmax {
		return false
	}
	for s := smin; s < smax; s++ {
		rx[s] = true
	}
	for t := tmin; t < tmax; t++ {
		ry[t] = true
	}
	return true
}

// preprocess reduces the problem size and maps elements to integer IDs.
//
// Every element of x[smin:smax] gets a dense ID. Elements of y[tmin:tmax] that don't appear in x
// are insertions and elements of x that don't appear in y are deletions, no matter what the
// solver decides. They are marked right away and dropped from the reduced inputs. Dropping them
// doesn't change the length of the longest common subsequence, so a minimal script of the reduced
// inputs is a minimal script of the full inputs.
//
// The results are:
//   - x0:   x[smin:smax] as IDs without elements that appear only in x
//   - y0:   y[tmin:tmax] as IDs without elements that appear only in y
//   - xidx: a mapping from x0 to x, x0[s] corresponds to x[xidx[s]]
//   - yidx: a mapping from y0 to y, y0[t] corresponds to y[yidx[t]]
func preprocess[T comparable](rx, ry []bool, smin, smax, tmin, tmax int, x, y []T) (x0, y0, xidx, yidx []int) {
	ids := make(map[T]int, smax-smin)
	buf := make([]int, 2*(smax-smin)+2*(tmax-tmin))
	x0, buf = buf[:0:smax-smin], buf[smax-smin:]
	xidx, buf = buf[:0:smax-smin], buf[smax-smin:]
	y0, buf = buf[:0:tmax-tmin], buf[tmax-tmin:]
	yidx, buf = buf[:0:tmax-tmin], buf[tmax-tmin:]
	if len(buf) != 0 {
		panic("something went wrong during buffer assignments")
	}

	for _, e := range x[smin:smax] {
		id, ok := ids[e]
		if !ok {
			id = len(ids)
			ids[e] = id
		}
		x0 = append(x0, id)
	}
	inY := make([]bool, len(ids)) // inY[id] is set if the element also appears in y
	for t := tmin; t < tmax; t++ {
		id, ok := ids[y[t]]
		if !ok {
			ry[t] = true
			continue
		}
		inY[id] = true
		y0 = append(y0, id)
		yidx = append(yidx, t)
	}

	// Filter x0 in place.
	i := 0
	for j, id := range x0 {
		if !inY[id] {
			rx[smin+j] = true
			continue
		}
		x0[i] = id
		xidx = append(xidx, smin+j)
		i++
	}
	return x0[:i], y0, xidx, yidx
}
