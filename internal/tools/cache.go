package tools

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// InstallFunc performs one full download and install attempt for key.
type InstallFunc func(ctx context.Context, key InstallKey) error

// InstallCache runs an install at most once successfully per cache root and
// InstallKey. Failures are not remembered: the next call for the same key
// starts a new attempt.
type InstallCache struct {
	mu    sync.Mutex
	cells map[cellKey]*installCell
}

type cellKey struct {
	root string
	key  InstallKey
}

type installCell struct {
	group singleflight.Group
	done  atomic.Bool
}

// processInstalls is shared by every Resolver. The temp archive path is
// fixed per root and key, so it must have a single writer per process.
var processInstalls = NewInstallCache()

func NewInstallCache() *InstallCache {
	return &InstallCache{cells: make(map[cellKey]*installCell)}
}

func (c *InstallCache) cell(root string, key InstallKey) *installCell {
	c.mu.Lock()
	defer c.mu.Unlock()
	ck := cellKey{root: root, key: key}
	cell, ok := c.cells[ck]
	if !ok {
		cell = &installCell{}
		c.cells[ck] = cell
	}
	return cell
}

// InstallOnce runs install for key under root unless an earlier call already
// succeeded. Concurrent callers for one root and key share a single attempt
// and its result. The attempt is detached from ctx: a caller that gives up
// gets ctx.Err() while the attempt carries on for everyone else.
func (c *InstallCache) InstallOnce(ctx context.Context, root string, key InstallKey, install InstallFunc) error {
	cell := c.cell(root, key)
	if cell.done.Load() {
		return nil
	}

	ch := cell.group.DoChan(key.String(), func() (any, error) {
		// A previous flight may have finished between Load and DoChan.
		if cell.done.Load() {
			return nil, nil
		}
		if err := install(context.WithoutCancel(ctx), key); err != nil {
			return nil, err
		}
		cell.done.Store(true)
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}
