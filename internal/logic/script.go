package logic

import (
	"fmt"

	"github.com/scummvm/scummvm-sub094/internal/resource"
)

// Script is a resident logic: its immutable bytecode, its messages and
// the scan start, the offset execution starts from when the logic is
// run or called.
type Script struct {
	ID        int
	Code      []byte
	Messages  []string
	ScanStart int
}

// Message returns message n of the script.
func (s *Script) Message(n int) (string, error) {
	if n < 1 || n > len(s.Messages) {
		return "", fmt.Errorf("logic %d message %d of %d: %w", s.ID, n, len(s.Messages), ErrBoundsViolation)
	}
	return s.Messages[n-1], nil
}

// Loader supplies decoded logics.
type Loader interface {
	Logic(id int) (*resource.Logic, error)
}

// Scripts keeps the resident scripts and their scan starts.
type Scripts struct {
	loader  Loader
	scripts map[int]*Script
}

func NewScripts(loader Loader) *Scripts {
	return &Scripts{loader: loader, scripts: map[int]*Script{}}
}

// Get returns script id, loading it when it isn't resident.
func (s *Scripts) Get(id int) (*Script, error) {
	if sc, ok := s.scripts[id]; ok {
		return sc, nil
	}
	l, err := s.loader.Logic(id)
	if err != nil {
		return nil, err
	}
	sc := &Script{ID: id, Code: l.Code, Messages: l.Messages}
	s.scripts[id] = sc
	return sc, nil
}

// Resident reports whether script id is loaded.
func (s *Scripts) Resident(id int) bool {
	_, ok := s.scripts[id]
	return ok
}

// Discard drops every script but logic 0.
func (s *Scripts) Discard() {
	for id := range s.scripts {
		if id != 0 {
			delete(s.scripts, id)
		}
	}
}
