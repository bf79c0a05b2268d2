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

package param

import (
	"fmt"
	"sort"
	"strings"

	"dirpx.dev/dxparam/dxcore/profile"
)

// render dispatches on the descriptor kind. visited is never nil.
func (p *Param[O]) render(owner O, visited *Visited) string {
	prof := p.profile()
	if isNil(owner) {
		return prof.NullMarker()
	}
	v := p.get(owner)
	if isNil(v) {
		return prof.NullMarker()
	}

	switch p.kind.tag {
	case CollectionKind:
		return p.renderCollection(v, prof, visited)
	case MapKind:
		return p.renderMap(v, prof, visited)
	default:
		return p.renderSingle(v, p.kind.value, prof, visited)
	}
}

// nameValue renders the name/value pair with an existing visited set.
func (p *Param[O]) nameValue(owner O, visited *Visited) string {
	return p.profile().NameValue(p.name, p.render(owner, visited))
}

func (p *Param[O]) renderSingle(v any, s shape, prof *profile.Profile, visited *Visited) string {
	if isNil(v) {
		return prof.NullMarker()
	}
	if s.mayDescribe {
		if ds := descriptorsOf(v); ds != nil {
			if !visited.Mark(v) {
				return p.renderRepeated(v, ds, prof)
			}
			return ds.render(v, visited)
		}
	}
	if p.override != nil {
		return p.override(v, false)
	}
	return fmt.Sprint(v)
}

// renderRepeated renders a describable value met again in the same call.
func (p *Param[O]) renderRepeated(v any, ds Descriptors, prof *profile.Profile) string {
	switch {
	case p.override != nil:
		return p.override(v, true)
	case ds.HasPrimary():
		return ds.renderPrimary(v)
	default:
		return prof.RecursionMarker()
	}
}

func (p *Param[O]) renderCollection(v any, prof *profile.Profile, visited *Visited) string {
	items := p.items(v)

	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.renderSingle(e, p.kind.value, prof, visited))
	}
	sb.WriteByte(']')
	return sb.String()
}

// renderMap renders entries as {k=v, ...} sorted by rendered key, the way fmt
// prints maps.
func (p *Param[O]) renderMap(v any, prof *profile.Profile, visited *Visited) string {
	entries := p.entries(v)

	type pair struct{ k, v string }
	pairs := make([]pair, len(entries))
	for i, e := range entries {
		pairs[i] = pair{
			k: p.renderSingle(e.key, p.kind.key, prof, visited),
			v: p.renderSingle(e.value, p.kind.value, prof, visited),
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })

	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range pairs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.k)
		sb.WriteByte('=')
		sb.WriteString(e.v)
	}
	sb.WriteByte('}')
	return sb.String()
}
