package engine

import (
	"github.com/rs/zerolog"
)

// Engine holds per-search scratch state. One Engine must not run two searches
// at once; create one per goroutine.
type Engine struct {
	tt    map[uint64]ttEntry // 每次搜索清空
	nodes int64

	log zerolog.Logger
}

func NewEngine() *Engine {
	return &Engine{
		tt:  make(map[uint64]ttEntry, 1<<14),
		log: zerolog.Nop(),
	}
}

// SetLogger 搜索结束时打一条 debug 日志
func (e *Engine) SetLogger(l zerolog.Logger) {
	e.log = l
}

func (e *Engine) resetTT() {
	if len(e.tt) == 0 {
		return
	}
	e.tt = make(map[uint64]ttEntry, 1<<14)
}
