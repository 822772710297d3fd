/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

// Package mtree implements a persistent, balanced metric tree: a B+-style
// tree of small leaves that stores variable-length data and lets callers
// query and mutate it through pluggable metrics.
//
// A Node is parameterized by a leaf type L and an aggregated info type I.
// Leaves satisfy the Leaf[L, I] contract (length, occupancy, split-on-push,
// cloning, an empty value); infos are combined through a Monoid[I]; metrics
// convert between a tree's base unit and a metric-specific unit and support
// leaf-local boundary search.
//
// This package supplies the tree mechanics only. Concrete leaf types (text
// chunks, style spans, line-break markers) live in sibling packages; see
// package breaks for the break-leaf exemplar the original design grew out
// of, and packages textrope / spans for two more exemplar leaves showing
// the same mechanics host other payloads.
//
// Nodes are immutable once built: edits produce a new root and leave the
// original tree, and every cursor reading it, untouched. Cursors are bound
// to one snapshot and must not be used after the tree they read from has
// been edited.
package mtree

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
