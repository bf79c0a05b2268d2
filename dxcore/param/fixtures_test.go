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

package param_test

import (
	"dirpx.dev/dxparam/dxcore/param"
	"dirpx.dev/dxparam/dxcore/policy"
)

type Point struct {
	X, Y int
}

var pointParams = param.NewBuilder[*Point]().
	With(param.Single("x", func(p *Point) int { return p.X }, policy.IncludedInAll)).
	With(param.Single("y", func(p *Point) int { return p.Y }, policy.IncludedInAll)).
	MustBuild()

func (p *Point) Descriptors() param.Descriptors { return pointParams }
func (p *Point) String() string                 { return pointParams.String(p) }

type Node struct {
	Self *Node
}

var nodeParams = param.NewBuilder[*Node]().
	With(param.Single("self", func(n *Node) *Node { return n.Self }, policy.IncludedInAll)).
	MustBuild()

func (n *Node) Descriptors() param.Descriptors { return nodeParams }

type Person struct {
	ID     int
	Name   string
	Friend *Person
}

var personParams = param.NewBuilder[*Person]().
	With(param.Primary("id", func(p *Person) int { return p.ID }, policy.IncludedInAll)).
	With(param.Single("name", func(p *Person) string { return p.Name }, policy.IncludedInAll)).
	With(param.Single("friend", func(p *Person) *Person { return p.Friend }, policy.IncludedInAll)).
	MustBuild()

func (p *Person) Descriptors() param.Descriptors { return personParams }

type Container struct {
	Items []any
}

var containerParams = param.NewBuilder[*Container]().
	With(param.Slice("items", func(c *Container) []any { return c.Items }, policy.IncludedInAll)).
	MustBuild()

type Hidden struct {
	Secret string
}

var hiddenParams = param.NewBuilder[*Hidden]().
	With(param.Single("secret", func(h *Hidden) string { return h.Secret }, policy.IgnoredForString)).
	MustBuild()

type Segment struct {
	A, B *Point
}

var segmentParams = param.NewBuilder[*Segment]().
	With(param.Single("a", func(s *Segment) *Point { return s.A }, policy.IncludedInAll)).
	With(param.Single("b", func(s *Segment) *Point { return s.B }, policy.IncludedInAll)).
	MustBuild()

type Graph struct {
	Name  string
	Nodes map[string]*Point
	Tags  []string
	Note  string
}

var graphParams = param.NewBuilder[*Graph]().
	With(param.Single("name", func(g *Graph) string { return g.Name }, policy.IncludedInAll)).
	With(param.Map("nodes", func(g *Graph) map[string]*Point { return g.Nodes }, policy.IncludedInAll)).
	With(param.Slice("tags", func(g *Graph) []string { return g.Tags }, policy.IncludedInAll)).
	With(param.Single("note", func(g *Graph) string { return g.Note }, policy.IncludedInStringOnly)).
	MustBuild()

func (g *Graph) Descriptors() param.Descriptors { return graphParams }
