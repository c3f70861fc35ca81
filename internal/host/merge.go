package host

import (
	"context"
	"errors"
	"sync"
)

// Merged fans several sources into one event channel. The merged channel is
// closed once every underlying channel is closed or Stop is called.
type Merged struct {
	sources []Source
	out     chan Event
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func Merge(sources ...Source) *Merged {
	return &Merged{sources: sources, out: make(chan Event)}
}

func (m *Merged) Start(ctx context.Context) error {
	mergeCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	for i, src := range m.sources {
		if err := src.Start(mergeCtx); err != nil {
			for _, started := range m.sources[:i] {
				_ = started.Stop()
			}
			cancel()
			return err
		}
	}
	for _, src := range m.sources {
		m.wg.Add(1)
		go func(in <-chan Event) {
			defer m.wg.Done()
			for {
				select {
				case <-mergeCtx.Done():
					return
				case ev, ok := <-in:
					if !ok {
						return
					}
					select {
					case m.out <- ev:
					case <-mergeCtx.Done():
						return
					}
				}
			}
		}(src.Events())
	}
	go func() {
		m.wg.Wait()
		close(m.out)
	}()
	return nil
}

func (m *Merged) Stop() error {
	if m.cancel != nil {
		m.cancel()
	}
	var errs []error
	for _, src := range m.sources {
		if err := src.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Merged) Events() <-chan Event { return m.out }
