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

// Package diag wires the structural logging shared by mtree's packages.
//
// Every package in this module selects its own tracing key and calls
// Trace(key) rather than holding a package-level tracer variable, following
// the pattern of github.com/npillmayer/schuko/tracing as used throughout the
// cords package this module descends from.
package diag

import (
	"github.com/google/uuid"
	"github.com/npillmayer/schuko/tracing"
)

// Trace returns the tracer registered under key, creating a default
// configuration lazily the way tracing.Select does across the corpus.
func Trace(key string) tracing.Trace {
	return tracing.Select(key)
}

// NewSnapshotID mints an opaque identifier for a tree snapshot, used purely
// for log correlation across package boundaries (builders vs. cursors vs.
// edits observing the "same" root). It carries no semantic weight and is
// never compared for tree equality.
func NewSnapshotID() string {
	return uuid.NewString()
}
