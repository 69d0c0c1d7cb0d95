package chess

// 方向表的顺序就是生成顺序
var (
	rookDirs   = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	queenDirs  = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
)

func slideDirs(k PieceKind) [][2]int {
	switch k {
	case Rook:
		return rookDirs[:]
	case Bishop:
		return bishopDirs[:]
	case Queen:
		return queenDirs[:]
	}
	return nil
}

// 象 / 车 / 后：沿方向走到底，遇敌子含、遇己方子不含
func genSliderMoves(b *Board, p *Piece, moves *[]Move) {
	for _, d := range slideDirs(p.Kind) {
		to := p.Pos.offset(d[0], d[1])
		for to.Valid() {
			dst := b.grid[to.index()]
			if dst == nil {
				*moves = append(*moves, Move{Piece: p, From: p.Pos, To: to})
			} else {
				if dst.Color != p.Color {
					*moves = append(*moves, Move{Piece: p, From: p.Pos, To: to, Capture: true})
				}
				break
			}
			to = to.offset(d[0], d[1])
		}
	}
}

// 单步走子（马、王）：越界或己方子占位则跳过
func genStepMoves(b *Board, p *Piece, offsets [][2]int, moves *[]Move) {
	for _, d := range offsets {
		to := p.Pos.offset(d[0], d[1])
		if !to.Valid() {
			continue
		}
		dst := b.grid[to.index()]
		if dst == nil {
			*moves = append(*moves, Move{Piece: p, From: p.Pos, To: to})
		} else if dst.Color != p.Color {
			*moves = append(*moves, Move{Piece: p, From: p.Pos, To: to, Capture: true})
		}
	}
}
