package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// FEN encodes the position. The en-passant field carries the target only when
// the capture is actually legal, so two equal positions always encode alike.
func (b *Board) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			p := b.grid[r*8+f]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	if b.active == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(b.castling.String())
	sb.WriteByte(' ')
	if ep, ok := b.EnPassantTarget(); ok {
		sb.WriteString(ep.String())
	} else {
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, " %d %d", b.halfmove, b.fullmove)
	return sb.String()
}

func fenErr(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidFEN)
}

// NewBoardFromFEN decodes a position string. Only placement and active color
// are required; missing castling / en-passant fields mean none, missing
// clocks mean "0 1". A failed decode never returns a board.
func NewBoardFromFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fenErr("need at least 2 fields, got %d", len(parts))
	}
	if len(parts) > 6 {
		return nil, fenErr("too many fields")
	}

	b := newEmptyBoard()
	if err := b.decodePlacement(parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		b.active = White
	case "b":
		b.active = Black
	default:
		return nil, fenErr("active color %q", parts[1])
	}

	if len(parts) > 2 {
		cr, err := parseCastling(parts[2])
		if err != nil {
			return nil, err
		}
		b.castling = cr
	}

	if len(parts) > 3 && parts[3] != "-" {
		ep, err := ParseCoordinate(parts[3])
		if err != nil {
			return nil, fenErr("en passant %q", parts[3])
		}
		if ep.Rank != epCaptureRank(b.active) {
			return nil, fenErr("en passant %s on wrong rank", ep)
		}
		b.epTarget, b.hasEP = ep, true
	}

	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return nil, fenErr("halfmove clock %q", parts[4])
		}
		b.halfmove = n
	}
	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 0 {
			return nil, fenErr("fullmove number %q", parts[5])
		}
		b.fullmove = n
	}

	kings := [2]int{}
	for _, p := range b.pieces {
		if p.Kind == King {
			kings[p.Color]++
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, fenErr("need one king per side, got white=%d black=%d", kings[White], kings[Black])
	}

	// 不走子的一方被将军的局面不可能出现，后面的搜索会去吃王
	if b.IsKingInCheck(b.active.Opposite()) {
		return nil, fenErr("side not to move is in check")
	}

	b.normalizeCastling()
	b.deriveHasMoved()

	b.history[b.PositionKey()] = 1
	b.outcome = b.Evaluate()
	return b, nil
}

func (b *Board) decodePlacement(s string) error {
	ranks := strings.Split(s, "/")
	if len(ranks) != 8 {
		return fenErr("need 8 ranks, got %d", len(ranks))
	}
	for i, row := range ranks {
		r := 7 - i
		f := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				f += int(ch - '0')
				if f > 8 {
					return fenErr("rank %q too wide", row)
				}
				continue
			}
			kind, ok := PieceKindFromLetter(ch)
			if !ok {
				return fenErr("unknown piece %q", ch)
			}
			if f >= 8 {
				return fenErr("rank %q too wide", row)
			}
			color := Black
			if ch >= 'A' && ch <= 'Z' {
				color = White
			}
			// 兵不能在第 1 / 8 横线
			if kind == Pawn && (r == 0 || r == 7) {
				return fenErr("pawn on back rank %s", Sq(f, r))
			}
			b.addPiece(&Piece{Kind: kind, Color: color, Pos: Sq(f, r)})
			f++
		}
		if f != 8 {
			return fenErr("rank %q has width %d", row, f)
		}
	}
	return nil
}

func parseCastling(s string) (CastlingRights, error) {
	var cr CastlingRights
	if s == "-" {
		return cr, nil
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'K':
			cr.WhiteKingside = true
		case 'Q':
			cr.WhiteQueenside = true
		case 'k':
			cr.BlackKingside = true
		case 'q':
			cr.BlackQueenside = true
		default:
			return cr, fenErr("castling %q", s)
		}
	}
	return cr, nil
}

// 王车不在原位的易位权直接丢弃
func (b *Board) normalizeCastling() {
	for _, c := range [2]Color{White, Black} {
		for _, side := range [2]CastleSide{Kingside, Queenside} {
			if !b.castling.Has(c, side) {
				continue
			}
			k := b.PieceAt(kingHome(c))
			r := b.PieceAt(rookHome(c, side))
			if k == nil || k.Kind != King || k.Color != c || r == nil || r.Kind != Rook || r.Color != c {
				b.castling.clear(c, side)
			}
		}
	}
}

// FEN 里没有 HasMoved，按位置和易位权推断
func (b *Board) deriveHasMoved() {
	for _, p := range b.pieces {
		switch p.Kind {
		case Pawn:
			p.HasMoved = p.Pos.Rank != pawnStartRank(p.Color)
		case Rook:
			p.HasMoved = true
			for _, side := range [2]CastleSide{Kingside, Queenside} {
				if p.Pos == rookHome(p.Color, side) && b.castling.Has(p.Color, side) {
					p.HasMoved = false
				}
			}
		case King:
			p.HasMoved = !(p.Pos == kingHome(p.Color) &&
				(b.castling.Has(p.Color, Kingside) || b.castling.Has(p.Color, Queenside)))
		default:
			p.HasMoved = false
		}
	}
}

func backRank(c Color) int8 {
	if c == White {
		return 0
	}
	return 7
}

func pawnStartRank(c Color) int8 {
	if c == White {
		return 1
	}
	return 6
}

func kingHome(c Color) Coordinate { return Coordinate{File: 4, Rank: backRank(c)} }

func rookHome(c Color, side CastleSide) Coordinate {
	if side == Kingside {
		return Coordinate{File: 7, Rank: backRank(c)}
	}
	return Coordinate{File: 0, Rank: backRank(c)}
}
