// Copyright 2010-2024 Google LLC
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

package barrier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlacks(t *testing.T) {
	sys := &System{
		A: [][]float64{{1, 2}, {3, 0}},
		B: []float64{1, 2},
		C: []float64{0, 0},
	}

	slack := make([]float64, sys.NumRows())
	require.True(t, sys.Slacks([]float64{1, 1}, slack))
	require.Equal(t, []float64{2, 1}, slack)
}

func TestSlacksDetectBoundary(t *testing.T) {
	sys := &System{
		A: [][]float64{{1}, {-1}},
		B: []float64{0, -1},
		C: []float64{1},
	}

	slack := make([]float64, sys.NumRows())

	// On a row boundary (slack exactly 0) the point is not interior.
	require.False(t, sys.Slacks([]float64{1}, slack))
	require.Equal(t, []float64{1, 0}, slack)

	// Outside a row the slack goes negative.
	require.False(t, sys.Slacks([]float64{2}, slack))
	require.Equal(t, []float64{2, -1}, slack)

	require.True(t, sys.Slacks([]float64{0.5}, slack))
}

func TestObjective(t *testing.T) {
	sys := &System{
		A: [][]float64{{1, 1, 1}},
		B: []float64{0},
		C: []float64{1, -2, 3},
	}

	require.Equal(t, 0.0, sys.Objective([]float64{0, 0, 0}))
	require.Equal(t, 2.0, sys.Objective([]float64{1, 1, 1}))
	require.Equal(t, -4.0, sys.Objective([]float64{0, 2, 0}))
}

func TestSystemDimensions(t *testing.T) {
	sys := &System{
		A: [][]float64{{1, 0}, {0, 1}, {1, 1}},
		B: []float64{0, 0, 0},
		C: []float64{1, 1},
	}

	require.Equal(t, 3, sys.NumRows())
	require.Equal(t, 2, sys.NumCols())
}
