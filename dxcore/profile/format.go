/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package profile

import (
	"strconv"

	"dirpx.dev/dxparam/dxcore/errors"
)

// Slot counts of the profile templates.
const (
	NameValueSlots = 2
	ValueSlots     = 1
	WrapSlots      = 3
)

// CheckTemplate reports whether tpl is a fmt format string with exactly
// slots string-compatible verbs (%s, %v or %q, optionally with flags, width
// and precision). "%%" is a literal percent sign. Explicit argument indexes
// and '*' widths are rejected because they change the slot count.
func CheckTemplate(option, tpl string, slots int) error {
	fail := func(reason string) error {
		return &errors.InvalidFormatTemplateError{Option: option, Template: tpl, Slots: slots, Reason: reason}
	}

	verbs := 0
	for i := 0; i < len(tpl); i++ {
		if tpl[i] != '%' {
			continue
		}
		i++
		if i >= len(tpl) {
			return fail("dangling % at end of template")
		}
		if tpl[i] == '%' {
			continue
		}
		for i < len(tpl) && isFlagOrWidth(tpl[i]) {
			i++
		}
		if i >= len(tpl) {
			return fail("incomplete verb at end of template")
		}
		switch c := tpl[i]; c {
		case 's', 'v', 'q':
			verbs++
		case '*', '[':
			return fail("argument indexes and '*' widths are not supported")
		default:
			return fail("unsupported verb %" + string(c) + " at offset " + strconv.Itoa(i))
		}
	}

	if verbs != slots {
		return fail("found " + strconv.Itoa(verbs) + " verbs")
	}
	return nil
}

func isFlagOrWidth(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '+', c == '-', c == '#', c == ' ', c == '.':
		return true
	default:
		return false
	}
}
