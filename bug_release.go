//go:build !alarmdebug

// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

// bugHook is a no-op in release builds, mirroring the C original's
// assert() compiled out under NDEBUG. BUG() still logs unconditionally.
func bugHook(msg string) {}
