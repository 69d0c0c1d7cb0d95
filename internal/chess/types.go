package chess

import (
	"fmt"
	"strings"
)

type Color int8

const (
	White Color = 0
	Black Color = 1
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

type PieceKind int8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = [...]byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}

// Letter 返回小写字母（FEN / UCI 用），NoKind 返回空格
func (k PieceKind) Letter() byte {
	if k < 0 || int(k) >= len(kindLetters) {
		return '?'
	}
	return kindLetters[k]
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// PieceKindFromLetter 大小写都接受
func PieceKindFromLetter(ch byte) (PieceKind, bool) {
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	for k := Pawn; k <= King; k++ {
		if kindLetters[k] == ch {
			return k, true
		}
	}
	return NoKind, false
}

// 升变可选子力，顺序即生成顺序
var promotionKinds = [4]PieceKind{Queen, Rook, Bishop, Knight}

func isPromotionKind(k PieceKind) bool {
	return k == Queen || k == Rook || k == Bishop || k == Knight
}

// Coordinate 0-based：File 0 = a 列，Rank 0 = 第 1 横线（白方底线）
type Coordinate struct {
	File int8
	Rank int8
}

func Sq(file, rank int) Coordinate { return Coordinate{File: int8(file), Rank: int8(rank)} }

func (c Coordinate) Valid() bool {
	return c.File >= 0 && c.File < 8 && c.Rank >= 0 && c.Rank < 8
}

func (c Coordinate) index() int { return int(c.Rank)*8 + int(c.File) }

func coordOf(idx int) Coordinate { return Coordinate{File: int8(idx % 8), Rank: int8(idx / 8)} }

func (c Coordinate) offset(df, dr int) Coordinate {
	return Coordinate{File: c.File + int8(df), Rank: c.Rank + int8(dr)}
}

func (c Coordinate) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{'a' + byte(c.File), '1' + byte(c.Rank)})
}

// isLight a1 为暗格
func (c Coordinate) isLight() bool { return (int(c.File)+int(c.Rank))%2 == 1 }

// ParseCoordinate parses algebraic squares such as "e4".
func ParseCoordinate(s string) (Coordinate, error) {
	if len(s) != 2 {
		return Coordinate{}, fmt.Errorf("square %q: %w", s, ErrInvalidSquare)
	}
	f := strings.ToLower(s)[0]
	r := s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return Coordinate{}, fmt.Errorf("square %q: %w", s, ErrInvalidSquare)
	}
	return Coordinate{File: int8(f - 'a'), Rank: int8(r - '1')}, nil
}

// Piece 由 Board 的棋子集合独占；网格里只存指针
type Piece struct {
	Kind     PieceKind
	Color    Color
	Pos      Coordinate
	HasMoved bool // 兵（双步）、车/王（易位）关心
}

// Letter 白方大写，黑方小写
func (p *Piece) Letter() byte {
	ch := p.Kind.Letter()
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s@%s", p.Color, p.Kind, p.Pos)
}

type CastleSide int8

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

func (cr CastlingRights) Has(c Color, side CastleSide) bool {
	switch {
	case c == White && side == Kingside:
		return cr.WhiteKingside
	case c == White && side == Queenside:
		return cr.WhiteQueenside
	case c == Black && side == Kingside:
		return cr.BlackKingside
	case c == Black && side == Queenside:
		return cr.BlackQueenside
	}
	return false
}

func (cr *CastlingRights) clear(c Color, side CastleSide) {
	switch {
	case c == White && side == Kingside:
		cr.WhiteKingside = false
	case c == White && side == Queenside:
		cr.WhiteQueenside = false
	case c == Black && side == Kingside:
		cr.BlackKingside = false
	case c == Black && side == Queenside:
		cr.BlackQueenside = false
	}
}

// String 按 FEN 格式："KQkq" 或 "-"
func (cr CastlingRights) String() string {
	var sb strings.Builder
	if cr.WhiteKingside {
		sb.WriteByte('K')
	}
	if cr.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if cr.BlackKingside {
		sb.WriteByte('k')
	}
	if cr.BlackQueenside {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// Move 生成时产生、应用时消费
type Move struct {
	Piece     *Piece
	From      Coordinate
	To        Coordinate
	Promotion PieceKind
	Capture   bool
	EnPassant bool
	Castle    CastleSide
}

// UCI 形如 e2e4 / e7e8q
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += string(m.Promotion.Letter())
	}
	return s
}

func (m Move) String() string { return m.UCI() }

// ParseUCI 只解析坐标和升变子；其余标志需要与合法走法匹配后才有
func ParseUCI(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("move %q: %w", s, ErrInvalidMove)
	}
	from, err := ParseCoordinate(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", s, ErrInvalidMove)
	}
	to, err := ParseCoordinate(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", s, ErrInvalidMove)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		k, ok := PieceKindFromLetter(s[4])
		if !ok || !isPromotionKind(k) {
			return Move{}, fmt.Errorf("move %q: bad promotion: %w", s, ErrInvalidMove)
		}
		m.Promotion = k
	}
	return m, nil
}

// Promotion 描述一个等待选择升变子力的兵
type Promotion struct {
	At    Coordinate
	Color Color
}
