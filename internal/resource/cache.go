package resource

import (
	"github.com/cespare/xxhash"

	"github.com/scummvm/scummvm-sub094/pkg/log"
)

// Cache keeps track of the resources that are resident, faulting them
// in from a Provider on first use.
type Cache struct {
	p      Provider
	logics map[int]*Logic
	views  map[int]*View
	log    log.Logger
}

// NewCache returns a Cache over p.
func NewCache(p Provider, logger log.Logger) *Cache {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Cache{
		p:      p,
		logics: map[int]*Logic{},
		views:  map[int]*View{},
		log:    logger,
	}
}

// Logic returns logic id, loading it if it isn't resident.
func (c *Cache) Logic(id int) (*Logic, error) {
	if l, ok := c.logics[id]; ok {
		return l, nil
	}
	l, err := c.p.LoadLogic(id)
	if err != nil {
		return nil, err
	}
	c.logics[id] = l
	c.log.Debugf("loaded logic %d (%d bytes, %d messages, %016x)", id, len(l.Code), len(l.Messages), xxhash.Sum64(l.Code))
	return l, nil
}

// View returns view id, loading it if it isn't resident.
func (c *Cache) View(id int) (*View, error) {
	if v, ok := c.views[id]; ok {
		return v, nil
	}
	v, err := c.p.LoadView(id)
	if err != nil {
		return nil, err
	}
	c.views[id] = v
	c.log.Debugf("loaded view %d (%d loops)", id, len(v.Loops))
	return v, nil
}

// Resident reports whether the resource is loaded.
func (c *Cache) Resident(kind Kind, id int) bool {
	switch kind {
	case KindLogic:
		_, ok := c.logics[id]
		return ok
	case KindView:
		_, ok := c.views[id]
		return ok
	}
	return false
}

// Unload drops a resident resource.
func (c *Cache) Unload(kind Kind, id int) {
	switch kind {
	case KindLogic:
		if _, ok := c.logics[id]; !ok {
			return
		}
		delete(c.logics, id)
	case KindView:
		if _, ok := c.views[id]; !ok {
			return
		}
		delete(c.views, id)
	}
	c.p.Unload(kind, id)
}

// UnloadRoom drops every resident resource except logic 0, which
// stays resident for the whole session.
func (c *Cache) UnloadRoom() {
	for id := range c.logics {
		if id != 0 {
			c.Unload(KindLogic, id)
		}
	}
	for id := range c.views {
		c.Unload(KindView, id)
	}
}
