package engine

type ttFlag uint8

const (
	ttExact ttFlag = iota
	ttLower        // 真实值 >= Score（beta 截断）
	ttUpper        // 真实值 <= Score（没有超过 alpha）
)

type ttEntry struct {
	Depth int
	Score int
	Flag  ttFlag
}

const ttMaxEntries = 1_000_000

func (e *Engine) storeTT(key uint64, depth int, score int, flag ttFlag) {
	if len(e.tt) > ttMaxEntries {
		e.tt = make(map[uint64]ttEntry, 1<<14)
	}
	e.tt[key] = ttEntry{Depth: depth, Score: score, Flag: flag}
}

// probeTT 只复用同一剩余深度的条目，保证结果和不带置换表的搜索完全一致
func (e *Engine) probeTT(key uint64, depth, alpha, beta int) (int, bool) {
	entry, ok := e.tt[key]
	if !ok || entry.Depth != depth {
		return 0, false
	}
	switch entry.Flag {
	case ttExact:
		return entry.Score, true
	case ttLower:
		if entry.Score >= beta {
			return entry.Score, true
		}
	case ttUpper:
		if entry.Score <= alpha {
			return entry.Score, true
		}
	}
	return 0, false
}
