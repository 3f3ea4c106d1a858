// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rtprogram_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salikh/colmcore/internal/rtprogram"
)

// TestNewWithConfigPreSizesPools checks that TreePoolSize/KidPoolSize
// pre-fill the pools: the first N allocations of each kind must not
// increase Allocated() beyond what Config already reserved.
func TestNewWithConfigPreSizesPools(t *testing.T) {
	prg := rtprogram.NewWithConfig(rtprogram.Config{TreePoolSize: 4, KidPoolSize: 2})

	stats := prg.Stats()
	require.Equal(t, 4, stats.TreesAllocated)
	require.Equal(t, 0, stats.TreesOutstanding)
	require.Equal(t, 2, stats.KidsAllocated)
	require.Equal(t, 0, stats.KidsOutstanding)

	for i := 0; i < 4; i++ {
		prg.AllocTree()
	}
	for i := 0; i < 2; i++ {
		prg.AllocKid()
	}

	stats = prg.Stats()
	require.Equal(t, 4, stats.TreesAllocated, "checking out exactly the pre-sized count must not grow the pool")
	require.Equal(t, 4, stats.TreesOutstanding)
	require.Equal(t, 2, stats.KidsAllocated)
	require.Equal(t, 2, stats.KidsOutstanding)
}

// TestDefaultPrintOptionsReflectsConfig checks that Program.DefaultPrintOptions
// carries PrintTrim/PrintComments through from Config.
func TestDefaultPrintOptionsReflectsConfig(t *testing.T) {
	prg := rtprogram.NewWithConfig(rtprogram.Config{PrintTrim: true, PrintComments: false})
	opts := prg.DefaultPrintOptions()
	require.True(t, opts.Trim)
	require.False(t, opts.PrintIgnore)
}

// TestStreamConfigCarriesRunBufSize checks that StreamConfig exposes the
// same RunBufSize a caller configured the program with.
func TestStreamConfigCarriesRunBufSize(t *testing.T) {
	prg := rtprogram.NewWithConfig(rtprogram.Config{RunBufSize: 256})
	require.Equal(t, 256, prg.StreamConfig().RunBufSize)
}
