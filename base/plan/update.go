// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plan provides a mechanism for updating a slice to contain a
// target list of elements, keeping every current element whose name is
// still in the target and only creating and destroying what differs.
// Names are unique string identifiers: they can be plain names, or keys
// generated from all of the inputs an element was made from, in which
// case a changed input produces a new name and thus a rebuild.
package plan

import (
	"log/slog"
)

// Update returns the elements of s updated to match the plan of n target
// elements, where name(i) is the name of target element i and nameOf
// returns the name of a current element. Current elements with a target
// name are kept as is. Any other current element is passed to destroy
// (if non-nil) before new is called for the target names that have no
// current element. The result is in target order, and mods reports
// whether it differs from s in any way.
func Update[T any](s []T, n int, name func(i int) string, nameOf func(e T) string, new func(name string, i int) T, destroy func(e T)) (r []T, mods bool) {
	names := make([]string, n)
	want := make(map[string]int, n)
	for i := range n {
		nm := name(i)
		if _, has := want[nm]; has {
			slog.Error("plan.Update: duplicate name", "name", nm)
		}
		names[i] = nm
		want[nm] = i
	}

	have := make(map[string]T, len(s))
	for i := len(s) - 1; i >= 0; i-- {
		e := s[i]
		nm := nameOf(e)
		if _, ok := want[nm]; !ok {
			mods = true
			if destroy != nil {
				destroy(e)
			}
			continue
		}
		have[nm] = e
	}

	r = make([]T, n)
	for i, nm := range names {
		if e, ok := have[nm]; ok {
			r[i] = e
			if i >= len(s) || nameOf(s[i]) != nm {
				mods = true
			}
			continue
		}
		mods = true
		r[i] = new(nm, i)
	}
	if len(r) != len(s) {
		mods = true
	}
	return r, mods
}
