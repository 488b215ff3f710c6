package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/simcore/internal/codec"
	"github.com/specialistvlad/simcore/internal/component"
	"github.com/specialistvlad/simcore/internal/ctxlog"
	"github.com/specialistvlad/simcore/internal/storage"
)

// Store writes the state of every component to dir/file.
func (s *Simulator) Store(ctx context.Context, dir, file string) (err error) {
	w, err := storage.NewWriter(dir, file, s.storage)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
	}()
	return s.StoreTo(ctx, w)
}

// Restore reads the state of every component from dir/file. The graph must
// have the same shape it had when the checkpoint was stored. A failed
// restore leaves the graph in an unspecified state.
func (s *Simulator) Restore(ctx context.Context, dir, file string) error {
	r, err := storage.NewReader(dir, file, s.storage)
	if err != nil {
		return err
	}
	defer r.Close()
	return s.RestoreFrom(ctx, r)
}

// StoreTo writes the state of every component to w.
//
// Components are visited depth first in container order. Each one writes
// its absolute path, its state fields, its failures and then its own
// Persistent state.
func (s *Simulator) StoreTo(ctx context.Context, w codec.Writer) error {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	e := codec.NewEncoder(w).WithGraph(s)

	count := 0
	for _, c := range s.Containers() {
		for _, child := range c.Items() {
			n, err := s.storeComponent(e, child)
			if err != nil {
				logger.Error("Failed to store checkpoint.", "path", s.PathOf(child), "error", err)
				return err
			}
			count += n
		}
	}

	s.metrics.CheckpointBytes.WithLabelValues("store").Add(float64(e.Written()))
	s.metrics.CheckpointDuration.WithLabelValues("store").Observe(time.Since(start).Seconds())
	logger.Info("Checkpoint stored.", "components", count, "bytes", e.Written())
	return nil
}

// RestoreFrom reads the state of every component from r.
func (s *Simulator) RestoreFrom(ctx context.Context, r codec.Reader) error {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	d := codec.NewDecoder(r).WithGraph(s)

	count := 0
	for _, c := range s.Containers() {
		for _, child := range c.Items() {
			n, err := s.restoreComponent(d, child)
			if err != nil {
				logger.Error("Failed to restore checkpoint.", "path", s.PathOf(child), "error", err)
				return err
			}
			count += n
		}
	}

	unresolved := d.Unresolved()
	for _, p := range unresolved {
		logger.Warn("Stored reference no longer resolves.", "path", p)
	}
	s.metrics.UnresolvedReferences.Add(float64(len(unresolved)))
	s.metrics.CheckpointBytes.WithLabelValues("restore").Add(float64(d.ReadCount()))
	s.metrics.CheckpointDuration.WithLabelValues("restore").Observe(time.Since(start).Seconds())
	logger.Info("Checkpoint restored.", "components", count, "bytes", d.ReadCount(), "unresolved_references", len(unresolved))
	return nil
}

func (s *Simulator) storeComponent(e *codec.Encoder, c component.Component) (int, error) {
	if err := codec.String.Store(e, s.PathOf(c)); err != nil {
		return 0, err
	}
	if holder, ok := c.(component.FieldHolder); ok {
		for _, f := range holder.Fields() {
			if !f.IsState() {
				continue
			}
			if err := f.Store(e); err != nil {
				return 0, fmt.Errorf("storing field %q: %w", s.PathOf(f), err)
			}
		}
	}
	if fallible, ok := c.(component.Fallible); ok {
		for _, failure := range fallible.Failures() {
			if err := failure.Store(e); err != nil {
				return 0, err
			}
		}
	}
	if p, ok := c.(component.Persistent); ok {
		if err := p.Store(e); err != nil {
			return 0, fmt.Errorf("storing %q: %w", s.PathOf(c), err)
		}
	}

	count := 1
	if composite, ok := c.(component.Composite); ok {
		for _, container := range composite.Containers() {
			for _, child := range container.Items() {
				n, err := s.storeComponent(e, child)
				if err != nil {
					return 0, err
				}
				count += n
			}
		}
	}
	return count, nil
}

func (s *Simulator) restoreComponent(d *codec.Decoder, c component.Component) (int, error) {
	var stored string
	if err := codec.String.Restore(d, &stored); err != nil {
		return 0, err
	}
	if current := s.PathOf(c); stored != current {
		return 0, fmt.Errorf("%w: checkpoint holds %q where the graph has %q", codec.ErrCannotRestore, stored, current)
	}
	if holder, ok := c.(component.FieldHolder); ok {
		for _, f := range holder.Fields() {
			if !f.IsState() {
				continue
			}
			if err := f.Restore(d); err != nil {
				return 0, fmt.Errorf("restoring field %q: %w", s.PathOf(f), err)
			}
		}
	}
	if fallible, ok := c.(component.Fallible); ok {
		for _, failure := range fallible.Failures() {
			if err := failure.Restore(d); err != nil {
				return 0, err
			}
		}
	}
	if p, ok := c.(component.Persistent); ok {
		if err := p.Restore(d); err != nil {
			return 0, fmt.Errorf("restoring %q: %w", s.PathOf(c), err)
		}
	}

	count := 1
	if composite, ok := c.(component.Composite); ok {
		for _, container := range composite.Containers() {
			for _, child := range container.Items() {
				n, err := s.restoreComponent(d, child)
				if err != nil {
					return 0, err
				}
				count += n
			}
		}
	}
	return count, nil
}
