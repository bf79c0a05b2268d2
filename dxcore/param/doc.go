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

// Package param derives equality, hashing and string rendering of a Go type
// from a single declaration of the fields that take part in them.
//
// A type declares its fields once, as an ordered list of descriptors built
// with a Builder. Each descriptor (Param) carries the field name, an accessor
// func(O) V, a policy.Usage saying whether the field takes part in equality,
// hashing and rendering, and a Kind describing the shape of the value:
//
//   - Single(V)      a single value, created with Single or Primary
//   - Collection(E)  a slice whose entries are handled one by one, created
//     with Slice
//   - Map(K, V)      a map whose keys and entries are handled one by one,
//     created with Map
//
// The built List is immutable and safe for concurrent use. Its Equal, Hash
// and Render methods walk the matching filtered view (EqualsView, HashView,
// StringView) in declaration order.
//
// # Self-describing values
//
// A type opts in to nested handling by implementing Describable, usually by
// returning a package-level list:
//
//	var nodeParams = param.NewBuilder[*Node]().
//	    With(param.Single("name", func(n *Node) string { return n.Name }, policy.IncludedInAll)).
//	    With(param.Single("next", func(n *Node) *Node { return n.Next }, policy.IncludedInAll)).
//	    MustBuild()
//
//	func (n *Node) Descriptors() param.Descriptors { return nodeParams }
//	func (n *Node) String() string                 { return nodeParams.String(n) }
//
// Fields holding describable values are rendered, compared and hashed through
// the nested list instead of fmt and reflect.DeepEqual.
//
// # Cycles
//
// Rendering keeps one Visited set per top-level call, keyed by dynamic type
// and reference identity. The root is recorded first. When a describable
// value is met again in the same call, its full form is replaced by the
// descriptor override (if any), by the short form built from its primary
// view (if non-empty), or by the recursion marker of the profile. Equality
// memoizes the pairs of references it is already comparing, and hashing
// descends a bounded number of levels, so all three operations terminate on
// cyclic graphs and equal graphs hash alike whatever their cycle lengths.
//
// # Policies
//
// Under the default policy.SafeOnly guard only the four usages that keep
// "equal implies same hash" are accepted; the builder rejects the others
// with errors.PolicyNotAllowedError unless it is created with
// WithGuard(policy.AllowUnsafe).
//
// # Output
//
// Rendering follows the builder's profile.Profile; with the default profile
// a Point renders as
//
//	Point@1f3a9c0d2b4e5f60 [x='1', y='2']
//
// Lists may be memoized per type with Once or a Registry.
package param
