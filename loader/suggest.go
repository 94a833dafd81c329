// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"os"
	"path/filepath"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// MinSimilarity is the least similarity of a suggested file name.
const MinSimilarity = 0.5

// Suggest returns the file in the directory of path whose name is most
// similar to the name of path, or "" if none is similar enough.
func Suggest(path string) string {
	dir, name := filepath.Split(path)
	ents, err := os.ReadDir(filepath.Clean(dir))
	if err != nil {
		return ""
	}
	lev := metrics.NewLevenshtein()
	best, bestSim := "", MinSimilarity
	for _, ent := range ents {
		if ent.IsDir() {
			continue
		}
		sim := strutil.Similarity(name, ent.Name(), lev)
		if sim >= bestSim && sim < 1 {
			best, bestSim = ent.Name(), sim
		}
	}
	if best == "" {
		return ""
	}
	return filepath.Join(dir, best)
}
