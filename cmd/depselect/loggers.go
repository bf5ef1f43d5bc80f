// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import deplog "github.com/ramereth/dep-selector/log"

// Loggers holds the structured logger this command wires into the solver,
// plus the verbosity flag that decided its level.
type Loggers struct {
	Log     *deplog.Logger
	Verbose bool
}
