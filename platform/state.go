// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"fmt"
	"log/slog"
)

// State is the state of one launch.
type State int32

const (
	// NotStarted is the state before the run command is started.
	NotStarted State = iota

	// Spawning is the state while the run command is being started.
	Spawning

	// Observing is the state while the output of the run command is
	// being matched.
	Observing

	// Succeeded is the terminal state of a successful launch.
	Succeeded

	// Failed is the terminal state of a failed launch.
	Failed
)

var stateNames = [...]string{"NotStarted", "Spawning", "Observing", "Succeeded", "Failed"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Terminal returns whether no transition leaves the state.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed
}

// launchState tracks the state of one launch, ignoring
// transitions out of a terminal state.
type launchState struct {
	state   State
	observe func(State)
	logger  *slog.Logger
}

// to moves to the given state and reports whether it did.
func (ls *launchState) to(s State) bool {
	if ls.state.Terminal() {
		return false
	}
	ls.logger.Debug("launch state", "from", ls.state, "to", s)
	ls.state = s
	if ls.observe != nil {
		ls.observe(s)
	}
	return true
}

// settle moves to [Succeeded] or [Failed] depending on err,
// and returns err.
func (ls *launchState) settle(err error) error {
	if err != nil {
		ls.to(Failed)
	} else {
		ls.to(Succeeded)
	}
	return err
}
