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
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"dirpx.dev/dxparam/dxcore/errors"
	"dirpx.dev/dxparam/dxcore/policy"
	"dirpx.dev/dxparam/dxcore/profile"
)

type builderConfig struct {
	guard  policy.Guard
	prof   profile.Profile
	logger *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*builderConfig)

// WithGuard sets the policy guard. The default is policy.SafeOnly.
func WithGuard(g policy.Guard) BuilderOption {
	return func(c *builderConfig) { c.guard = g }
}

// WithProfile sets the formatting profile. The default is profile.Default().
func WithProfile(p profile.Profile) BuilderOption {
	return func(c *builderConfig) { c.prof = p }
}

// WithLogger sets the logger used for debug events. A nil logger discards.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(c *builderConfig) { c.logger = l }
}

// Builder accumulates validated descriptors of O. Add, Update and Remove
// validate immediately; Build produces an immutable List that later builder
// calls do not affect. A Builder is not safe for concurrent use.
type Builder[O any] struct {
	owner  reflect.Type
	cfg    builderConfig
	names  []string
	params map[string]*Param[O]
	err    error
}

// NewBuilder returns an empty builder for O.
func NewBuilder[O any](opts ...BuilderOption) *Builder[O] {
	cfg := builderConfig{guard: policy.SafeOnly, prof: profile.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return &Builder[O]{
		owner:  reflect.TypeFor[O](),
		cfg:    cfg,
		params: make(map[string]*Param[O]),
	}
}

func (b *Builder[O]) typeName() string {
	return b.cfg.prof.TypeName(b.owner)
}

// check validates p for operation op.
func (b *Builder[O]) check(p *Param[O], op string) error {
	if p == nil {
		return &errors.NullArgumentError{Position: 1, Name: "param", Operation: op}
	}
	if p.name == "" {
		return &errors.NullArgumentError{Position: 1, Name: "name", Operation: op}
	}
	if p.get == nil {
		return &errors.NullArgumentError{Position: 2, Name: "get", Operation: op}
	}
	if !b.cfg.guard.Allows(p.usage) {
		return &errors.PolicyNotAllowedError{
			Type:  b.typeName(),
			Name:  p.name,
			Usage: p.usage.String(),
			Guard: b.cfg.guard.String(),
		}
	}
	return nil
}

// Add appends p. It fails if p is incomplete, if its usage is not allowed by
// the guard or if its name is already taken.
func (b *Builder[O]) Add(p *Param[O]) error {
	if err := b.check(p, "Builder.Add"); err != nil {
		return err
	}
	if _, dup := b.params[p.name]; dup {
		return &errors.DuplicateNameError{Type: b.typeName(), Name: p.name}
	}
	b.names = append(b.names, p.name)
	b.params[p.name] = p
	b.cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "param added",
		slog.String("type", b.typeName()),
		slog.String("name", p.name),
		slog.String("usage", p.usage.String()),
		slog.String("kind", p.kind.String()),
	)
	return nil
}

// Update replaces the descriptor with p's name, keeping its position.
func (b *Builder[O]) Update(p *Param[O]) error {
	if err := b.check(p, "Builder.Update"); err != nil {
		return err
	}
	if _, ok := b.params[p.name]; !ok {
		return &errors.UnknownNameError{Type: b.typeName(), Name: p.name}
	}
	b.params[p.name] = p
	return nil
}

// Remove deletes the descriptor with the given name.
func (b *Builder[O]) Remove(name string) error {
	if _, ok := b.params[name]; !ok {
		return &errors.UnknownNameError{Type: b.typeName(), Name: name}
	}
	delete(b.params, name)
	for i, n := range b.names {
		if n == name {
			b.names = append(b.names[:i:i], b.names[i+1:]...)
			break
		}
	}
	return nil
}

// With adds params in order and returns b for chaining. The first error is
// kept and returned by Build; later calls are ignored.
func (b *Builder[O]) With(params ...*Param[O]) *Builder[O] {
	for _, p := range params {
		if b.err != nil {
			break
		}
		b.err = b.Add(p)
	}
	return b
}

// Err returns the first error recorded by With.
func (b *Builder[O]) Err() error { return b.err }

// Len returns the number of descriptors added so far.
func (b *Builder[O]) Len() int { return len(b.names) }

// Build returns the immutable list.
func (b *Builder[O]) Build() (*List[O], error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.cfg.prof.Validate(); err != nil {
		return nil, fmt.Errorf("profile is invalid: %w", err)
	}

	ordered := make([]*Param[O], len(b.names))
	for i, n := range b.names {
		ordered[i] = b.params[n]
	}
	l := newList(b.owner, ordered, b.cfg.prof, b.cfg.guard)

	b.cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "descriptor list built",
		slog.String("type", b.typeName()),
		slog.Int("count", l.Len()),
		slog.Int("equals", len(l.equalsView)),
		slog.Int("hash", len(l.hashView)),
		slog.Int("string", len(l.stringView)),
	)
	return l, nil
}

// MustBuild is like Build but panics on error. It suits package-level list
// variables.
func (b *Builder[O]) MustBuild() *List[O] {
	l, err := b.Build()
	if err != nil {
		panic(err)
	}
	return l
}
