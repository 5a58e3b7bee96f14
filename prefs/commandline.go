// This file is part of GopherAdvance.
//
// GopherAdvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherAdvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherAdvance.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// overrides is a group of preference values taken from the command line. the
// values override whatever is loaded from disk
type overrides map[string]string

// parseOverrides splits a prefs string of the form "key::value; key::value".
// entries without the "::" separator or with an empty key are ignored
func parseOverrides(prefs string) overrides {
	o := make(overrides)
	for _, p := range strings.Split(prefs, ";") {
		k, v, ok := strings.Cut(p, "::")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		o[k] = strings.TrimSpace(v)
	}
	return o
}

// String rebuilds the prefs string. keys are sorted.
func (o overrides) String() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := make([]string, 0, len(keys))
	for _, k := range keys {
		s = append(s, fmt.Sprintf("%s::%s", k, o[k]))
	}
	return strings.Join(s, "; ")
}

var commandLine struct {
	mu    sync.Mutex
	stack []overrides
}

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	commandLine.mu.Lock()
	defer commandLine.mu.Unlock()
	return len(commandLine.stack)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack().
//
// Returns the preferences in the group that were never asked for, in the same
// form as accepted by PushCommandLineStack().
func PopCommandLineStack() string {
	commandLine.mu.Lock()
	defer commandLine.mu.Unlock()

	n := len(commandLine.stack)
	if n == 0 {
		return ""
	}

	popped := commandLine.stack[n-1]
	commandLine.stack = commandLine.stack[:n-1]

	return popped.String()
}

// PushCommandLineStack parses a prefs string and adds it as a new group. Only
// the most recent group is consulted by GetCommandLinePref().
func PushCommandLineStack(prefs string) {
	commandLine.mu.Lock()
	defer commandLine.mu.Unlock()
	commandLine.stack = append(commandLine.stack, parseOverrides(prefs))
}

// GetCommandLinePref value from current group. The value is deleted when it is
// returned.
func GetCommandLinePref(key string) (bool, Value) {
	commandLine.mu.Lock()
	defer commandLine.mu.Unlock()

	n := len(commandLine.stack)
	if n == 0 {
		return false, nil
	}

	top := commandLine.stack[n-1]
	if v, ok := top[key]; ok {
		delete(top, key)
		return true, v
	}

	return false, nil
}
