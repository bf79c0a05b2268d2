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
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
	"testing"

	"dirpx.dev/dxparam/dxcore/param"
	"dirpx.dev/dxparam/dxcore/policy"
	"dirpx.dev/dxparam/dxcore/profile"
)

func TestList_Render_Point(t *testing.T) {
	p := &Point{X: 1, Y: 2}

	got, err := pointParams.Render(p)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := fmt.Sprintf("Point@%x [x='1', y='2']", pointParams.Hash(p))
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if s := p.String(); s != want {
		t.Errorf("String() = %q, want %q", s, want)
	}
}

func TestList_Render_SelfReference(t *testing.T) {
	n := &Node{}
	n.Self = n

	got, err := nodeParams.Render(n)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !regexp.MustCompile(`^Node@[0-9a-f]+ \[self=\.\.\.\]$`).MatchString(got) {
		t.Errorf("Render() = %q, want Node@<hex> [self=...]", got)
	}
}

func TestList_Render_LongCycle(t *testing.T) {
	a, b, c := &Node{}, &Node{}, &Node{}
	a.Self, b.Self, c.Self = b, c, a

	got, err := nodeParams.Render(a)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if n := strings.Count(got, "Node@"); n != 3 {
		t.Errorf("Render() = %q, want 3 nested nodes, got %d", got, n)
	}
	if !strings.HasSuffix(got, "[self=...]']']") {
		t.Errorf("Render() = %q, want the cycle cut with the recursion marker", got)
	}
}

func TestList_Render_PrimaryFallback(t *testing.T) {
	p := &Person{ID: 1, Name: "ann"}
	p.Friend = p

	got, err := personParams.Render(p)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	h := personParams.Hash(p)
	want := fmt.Sprintf("Person@%x [id='1', name='ann', friend='Person@%x [id='1']']", h, h)
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestList_RenderPrimary(t *testing.T) {
	p := &Person{ID: 7, Name: "bob"}
	got, err := personParams.RenderPrimary(p)
	if err != nil {
		t.Fatalf("RenderPrimary() error = %v", err)
	}
	if want := fmt.Sprintf("Person@%x [id='7']", personParams.Hash(p)); got != want {
		t.Errorf("RenderPrimary() = %q, want %q", got, want)
	}

	pt := &Point{X: 1}
	got, err = pointParams.RenderPrimary(pt)
	if err != nil {
		t.Fatalf("RenderPrimary() error = %v", err)
	}
	if want := fmt.Sprintf("Point@%x [...]", pointParams.Hash(pt)); got != want {
		t.Errorf("RenderPrimary() without primary view = %q, want %q", got, want)
	}
}

func TestList_Render_Container(t *testing.T) {
	c := &Container{Items: []any{"p", nil, "q"}}

	items, ok := containerParams.Lookup("items")
	if !ok {
		t.Fatal("Lookup(items) = false")
	}
	if got := items.Render(c, nil); got != "[p, null, q]" {
		t.Errorf("items.Render() = %q, want %q", got, "[p, null, q]")
	}

	got, err := containerParams.Render(c)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasSuffix(got, " [items='[p, null, q]']") {
		t.Errorf("Render() = %q, want items='[p, null, q]'", got)
	}
}

func TestList_Render_EmptyStringView(t *testing.T) {
	h := &Hidden{Secret: "s3cr3t"}

	got, err := hiddenParams.Render(h)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := fmt.Sprintf("Hidden@%x [ ]", hiddenParams.Hash(h)); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if strings.Contains(got, "s3cr3t") {
		t.Errorf("Render() = %q leaks a field ignored for string", got)
	}
}

func TestList_Render_Nested(t *testing.T) {
	a := &Point{X: 1, Y: 2}
	s := &Segment{A: a}

	got, err := segmentParams.Render(s)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := fmt.Sprintf("Segment@%x [a='Point@%x [x='1', y='2']', b=null]", segmentParams.Hash(s), pointParams.Hash(a))
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestList_Render_SharedReference(t *testing.T) {
	a := &Point{X: 1, Y: 2}
	s := &Segment{A: a, B: a}

	got, err := segmentParams.Render(s)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasSuffix(got, ", b=...]") {
		t.Errorf("Render() = %q, want the second reference cut", got)
	}

	// Distinct but equal values are rendered in full.
	s.B = &Point{X: 1, Y: 2}
	got, _ = segmentParams.Render(s)
	if strings.Count(got, "Point@") != 2 {
		t.Errorf("Render() = %q, want two full points", got)
	}
}

func TestList_Render_Map(t *testing.T) {
	a := &Point{X: 1, Y: 2}
	g := &Graph{
		Name:  "g",
		Nodes: map[string]*Point{"b": nil, "a": a},
		Tags:  []string{"x", "y"},
		Note:  "n",
	}

	nodes, _ := graphParams.Lookup("nodes")
	want := fmt.Sprintf("{a=Point@%x [x='1', y='2'], b=null}", pointParams.Hash(a))
	if got := nodes.Render(g, nil); got != want {
		t.Errorf("nodes.Render() = %q, want %q", got, want)
	}

	got, err := graphParams.Render(g)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, part := range []string{"name='g'", "nodes='{a=", "tags='[x, y]'", "note='n'"} {
		if !strings.Contains(got, part) {
			t.Errorf("Render() = %q, missing %q", got, part)
		}
	}
	if i, j := strings.Index(got, "name="), strings.Index(got, "note="); i > j {
		t.Errorf("Render() = %q, want declaration order", got)
	}
}

func TestList_Render_NilRoot(t *testing.T) {
	if _, err := pointParams.Render(nil); err == nil {
		t.Error("Render(nil) error = nil, want error")
	}
	if _, err := pointParams.RenderPrimary(nil); err == nil {
		t.Error("RenderPrimary(nil) error = nil, want error")
	}
	if got := pointParams.String(nil); got != "null" {
		t.Errorf("String(nil) = %q, want null", got)
	}
}

func TestList_RenderWith_SharedVisited(t *testing.T) {
	a := &Point{X: 1, Y: 2}
	v := param.NewVisited()

	if _, err := pointParams.RenderWith(a, v); err != nil {
		t.Fatalf("RenderWith() error = %v", err)
	}
	if !v.Seen(a) {
		t.Error("RenderWith() did not record the root")
	}

	s := &Segment{A: a}
	got, err := segmentParams.RenderWith(s, v)
	if err != nil {
		t.Fatalf("RenderWith() error = %v", err)
	}
	if !strings.Contains(got, "a=...") {
		t.Errorf("RenderWith() = %q, want a already visited", got)
	}
}

func TestList_Render_Profile(t *testing.T) {
	prof := profile.MustNew(
		profile.WithDelimiter("; "),
		profile.WithNameValueFormat("%s: %s"),
		profile.WithValueFormat("%s"),
		profile.WithHashString(func(uint64) string { return "0" }),
	)
	l := param.NewBuilder[*Point](param.WithProfile(prof)).
		With(param.Single("x", func(p *Point) int { return p.X }, policy.IncludedInAll)).
		With(param.Single("y", func(p *Point) int { return p.Y }, policy.IncludedInAll)).
		MustBuild()

	got, err := l.Render(&Point{X: 3, Y: 4})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "Point@0 [x: 3; y: 4]" {
		t.Errorf("Render() = %q, want %q", got, "Point@0 [x: 3; y: 4]")
	}
}

func TestList_Equal(t *testing.T) {
	a := &Point{X: 1, Y: 2}
	b := &Point{X: 1, Y: 2}
	c := &Point{X: 2, Y: 1}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same reference", a, a, true},
		{"equal values", a, b, true},
		{"different values", a, c, false},
		{"both nil", nil, nil, true},
		{"typed nil and nil", (*Point)(nil), nil, true},
		{"one nil", a, nil, false},
		{"nil first", nil, a, false},
		{"neither owner equal", "x", "x", true},
		{"neither owner different", 1, 2, false},
		{"one owner", a, "x", false},
		{"owner value type", *a, *b, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointParams.Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestList_EqualAndHash_Scenario(t *testing.T) {
	a := &Point{X: 1, Y: 2}
	b := &Point{X: 1, Y: 2}
	if !pointParams.Equal(a, b) {
		t.Fatal("Equal() = false, want true")
	}
	if pointParams.Hash(a) != pointParams.Hash(b) {
		t.Errorf("Hash() differs for equal points: %x, %x", pointParams.Hash(a), pointParams.Hash(b))
	}
}

func TestList_Hash_Deterministic(t *testing.T) {
	g := &Graph{Name: "g", Nodes: map[string]*Point{"a": {X: 1}, "b": {Y: 2}, "c": nil}, Tags: []string{"t"}}
	first := graphParams.Hash(g)
	for range 20 {
		if h := graphParams.Hash(g); h != first {
			t.Fatalf("Hash() = %x, want %x", h, first)
		}
	}
	if graphParams.Hash(nil) != 0 {
		t.Error("Hash(nil) != 0")
	}
}

func TestList_Hash_OrderSensitive(t *testing.T) {
	if pointParams.Hash(&Point{X: 1, Y: 2}) == pointParams.Hash(&Point{X: 2, Y: 1}) {
		t.Error("Hash() ignores field order")
	}
}

func TestList_Hash_IgnoresStringOnly(t *testing.T) {
	a := &Graph{Name: "g", Note: "one"}
	b := &Graph{Name: "g", Note: "two"}
	if !graphParams.Equal(a, b) {
		t.Error("Equal() = false, want true for a string-only difference")
	}
	if graphParams.Hash(a) != graphParams.Hash(b) {
		t.Error("Hash() depends on a string-only field")
	}
}

func TestList_EqualImpliesHash(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	point := func() *Point {
		if r.IntN(8) == 0 {
			return nil
		}
		return &Point{X: r.IntN(2), Y: r.IntN(2)}
	}
	graph := func() *Graph {
		g := &Graph{Name: []string{"a", "b"}[r.IntN(2)], Note: fmt.Sprint(r.IntN(3))}
		if r.IntN(4) > 0 {
			g.Nodes = map[string]*Point{}
			for range r.IntN(3) {
				g.Nodes[fmt.Sprint(r.IntN(2))] = point()
			}
		}
		for range r.IntN(2) {
			g.Tags = append(g.Tags, "t")
		}
		return g
	}

	var equal int
	for range 2000 {
		a, b := graph(), graph()
		if graphParams.Equal(a, b) {
			equal++
			if graphParams.Hash(a) != graphParams.Hash(b) {
				t.Fatalf("Equal(%+v, %+v) but hashes differ", a, b)
			}
		}
	}
	if equal == 0 {
		t.Fatal("no equal pairs generated")
	}
}

func TestList_EqualAndHash_Cycles(t *testing.T) {
	a, b := &Node{}, &Node{}
	a.Self, b.Self = a, b

	if !nodeParams.Equal(a, b) {
		t.Error("Equal() = false for isomorphic self loops")
	}
	if nodeParams.Hash(a) != nodeParams.Hash(b) {
		t.Error("Hash() differs for isomorphic self loops")
	}

	p, q := &Person{ID: 1}, &Person{ID: 1}
	p.Friend, q.Friend = q, p
	if !personParams.Equal(p, q) {
		t.Error("Equal() = false for a two-person cycle")
	}
	if personParams.Hash(p) != personParams.Hash(q) {
		t.Error("Hash() differs for a two-person cycle")
	}
}

func TestList_EqualAndHash_CycleLengths(t *testing.T) {
	ring := func(n int) *Node {
		nodes := make([]*Node, n)
		for i := range nodes {
			nodes[i] = &Node{}
		}
		for i, nd := range nodes {
			nd.Self = nodes[(i+1)%n]
		}
		return nodes[0]
	}
	people := func(n int) *Person {
		ps := make([]*Person, n)
		for i := range ps {
			ps[i] = &Person{ID: 1, Name: "x"}
		}
		for i, p := range ps {
			p.Friend = ps[(i+1)%n]
		}
		return ps[0]
	}

	for _, n := range []int{2, 3, 5} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			a, b := ring(1), ring(n)
			if !nodeParams.Equal(a, b) {
				t.Fatalf("Equal(self loop, %d-cycle) = false", n)
			}
			if ha, hb := nodeParams.Hash(a), nodeParams.Hash(b); ha != hb {
				t.Errorf("Hash(self loop) = %x, Hash(%d-cycle) = %x", ha, n, hb)
			}

			p, q := people(1), people(n)
			if !personParams.Equal(p, q) {
				t.Fatalf("Equal(self friend, %d-cycle) = false", n)
			}
			if hp, hq := personParams.Hash(p), personParams.Hash(q); hp != hq {
				t.Errorf("Hash(self friend) = %x, Hash(%d-cycle) = %x", hp, n, hq)
			}
		})
	}

	// A differing field anywhere on the ring still breaks equality.
	p, q := people(1), people(3)
	q.Friend.Friend.Name = "y"
	if personParams.Equal(p, q) {
		t.Error("Equal() = true for rings with a differing member")
	}
}

func TestList_Views(t *testing.T) {
	names := func(ps []*param.Param[*Graph]) string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name())
		}
		return strings.Join(out, ",")
	}

	if got := names(graphParams.All()); got != "name,nodes,tags,note" {
		t.Errorf("All() = %s", got)
	}
	if got := names(graphParams.EqualsView()); got != "name,nodes,tags" {
		t.Errorf("EqualsView() = %s", got)
	}
	if got := names(graphParams.HashView()); got != "name,nodes,tags" {
		t.Errorf("HashView() = %s", got)
	}
	if got := names(graphParams.StringView()); got != "name,nodes,tags,note" {
		t.Errorf("StringView() = %s", got)
	}
	if got := names(graphParams.PrimaryView()); got != "" {
		t.Errorf("PrimaryView() = %s", got)
	}
	if !personParams.HasPrimary() || graphParams.HasPrimary() {
		t.Error("HasPrimary() mismatch")
	}
	if got := strings.Join(graphParams.Names(), ","); got != "name,nodes,tags,note" {
		t.Errorf("Names() = %s", got)
	}
	if graphParams.Len() != 4 {
		t.Errorf("Len() = %d, want 4", graphParams.Len())
	}
	if _, ok := graphParams.Lookup("missing"); ok {
		t.Error("Lookup(missing) = true")
	}
	if graphParams.Guard() != policy.SafeOnly {
		t.Errorf("Guard() = %v, want safe-only", graphParams.Guard())
	}

	// Views are copies.
	v := graphParams.All()
	v[0] = nil
	if graphParams.All()[0] == nil {
		t.Error("All() exposes internal state")
	}
}

func TestList_ConcurrentUse(t *testing.T) {
	p := &Person{ID: 1, Name: "ann"}
	p.Friend = p
	want, _ := personParams.Render(p)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if got, _ := personParams.Render(p); got != want {
					t.Errorf("Render() = %q, want %q", got, want)
					return
				}
				if !personParams.Equal(p, p) {
					t.Error("Equal(p, p) = false")
					return
				}
			}
		}()
	}
	wg.Wait()
}
