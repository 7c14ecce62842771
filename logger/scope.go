package logger

import (
	"fmt"
	"os"
	"sync"

	"github.com/sablelog/sable/core"
)

// Scope is one frame of scoped attributes, bound to the goroutine that
// opened it. Close pops the frame; it must be the goroutine's current
// top and must be closed on the owning goroutine.
type Scope struct {
	owner *Logger
	attrs core.List
	prev  *Scope
	gid   uint64
}

// registry tracks the top scope frame of every goroutine that has one.
type registry struct {
	mu   sync.Mutex
	tops map[uint64]*Scope
}

func (r *registry) push(owner *Logger, attrs core.List) *Scope {
	gid := core.GoroutineID()
	s := &Scope{owner: owner, attrs: attrs, gid: gid}
	r.mu.Lock()
	if r.tops == nil {
		r.tops = make(map[uint64]*Scope)
	}
	s.prev = r.tops[gid]
	r.tops[gid] = s
	r.mu.Unlock()
	return s
}

// Close pops the frame. Closing out of LIFO order or from a goroutine
// other than the one that opened the frame breaks the stack invariant;
// the violation is reported on standard error and the process panics.
func (s *Scope) Close() {
	r := &s.owner.scopes
	gid := core.GoroutineID()
	r.mu.Lock()
	top := r.tops[s.gid]
	if gid != s.gid || top != s {
		r.mu.Unlock()
		fmt.Fprintln(os.Stderr, "sable: scope closed out of order or on the wrong goroutine")
		panic("sable: scope stack violation")
	}
	if s.prev != nil {
		r.tops[s.gid] = s.prev
	} else {
		delete(r.tops, s.gid)
	}
	r.mu.Unlock()
}

// collect appends the calling goroutine's frames to the pack, from the
// innermost frame outward.
func (r *registry) collect(pack *core.Pack) {
	gid := core.GoroutineID()
	r.mu.Lock()
	s := r.tops[gid]
	r.mu.Unlock()
	for ; s != nil; s = s.prev {
		pack.Push(&s.attrs)
	}
}
