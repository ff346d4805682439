package card

import (
	"fmt"
	"strconv"
)

// Kind 牌的种类，决定了其余字段中哪些有意义
type Kind int

const (
	KindSuit      Kind = iota // 数字牌
	KindSkullKing             // 骷髅王
	KindPirate                // 海盗
	KindMermaid               // 美人鱼
	KindEscape                // 逃跑（含金币、克拉肯）
	KindTigres                // 蒂格雷丝
)

// Color 数字牌的花色，声明顺序即排序顺序
type Color int

const (
	Green Color = iota
	Yellow
	Purple
	Black
)

// Colors 按排序顺序列出全部花色
var Colors = []Color{Green, Yellow, Purple, Black}

// EscapeType 逃跑牌的子类型
type EscapeType int

const (
	EscapePlain EscapeType = iota
	EscapeGold
	EscapeKraken
)

// TigresAs 蒂格雷丝出牌时声明的身份
type TigresAs int

const (
	TigresUnset TigresAs = iota
	TigresPirate
	TigresEscape
)

// Identity 判定时牌所扮演的角色
type Identity int

const (
	IdentitySuit Identity = iota
	IdentitySkullKing
	IdentityPirate
	IdentityMermaid
	IdentityEscape
	IdentityUnresolved // 尚未声明身份的蒂格雷丝
)

// MaxNumber 数字牌的最大点数
const MaxNumber = 14

// Card 一张牌。种类之外的字段只能通过对应的构造函数设置。
type Card struct {
	ID          int    // 牌堆中的稳定编号 0..69
	BeatenCount int    // 美人鱼/骷髅王在本墩中压过的牌数
	Owner       string // 本回合打出这张牌的玩家 ID

	kind     Kind
	color    Color
	number   int
	escape   EscapeType
	tigresAs TigresAs
}

// NewSuitCard 创建数字牌
func NewSuitCard(color Color, number int) Card {
	return Card{kind: KindSuit, color: color, number: number}
}

// NewSpecialCard 创建骷髅王、海盗、美人鱼或蒂格雷丝
func NewSpecialCard(kind Kind) Card {
	if kind == KindSuit || kind == KindEscape {
		panic(fmt.Sprintf("card: %v is not a special kind", kind))
	}
	return Card{kind: kind}
}

// NewEscapeCard 创建逃跑牌
func NewEscapeCard(escape EscapeType) Card {
	return Card{kind: KindEscape, escape: escape}
}

func (c Card) Kind() Kind { return c.kind }

// Color 返回数字牌的花色，非数字牌返回 false
func (c Card) Color() (Color, bool) {
	if c.kind != KindSuit {
		return 0, false
	}
	return c.color, true
}

// Number 返回数字牌的点数，非数字牌为 0
func (c Card) Number() int {
	if c.kind != KindSuit {
		return 0
	}
	return c.number
}

// Escape 返回逃跑牌的子类型，非逃跑牌返回 false
func (c Card) Escape() (EscapeType, bool) {
	if c.kind != KindEscape {
		return 0, false
	}
	return c.escape, true
}

// TigresAs 返回蒂格雷丝声明的身份，其它牌为 TigresUnset
func (c Card) TigresAs() TigresAs {
	if c.kind != KindTigres {
		return TigresUnset
	}
	return c.tigresAs
}

// ResolveTigres 为蒂格雷丝声明身份，不是蒂格雷丝或身份无效时返回 false
func (c *Card) ResolveTigres(as TigresAs) bool {
	if c.kind != KindTigres || (as != TigresPirate && as != TigresEscape) {
		return false
	}
	c.tigresAs = as
	return true
}

// Identity 返回判定身份，已声明的蒂格雷丝按海盗或逃跑处理
func (c Card) Identity() Identity {
	switch c.kind {
	case KindSuit:
		return IdentitySuit
	case KindSkullKing:
		return IdentitySkullKing
	case KindPirate:
		return IdentityPirate
	case KindMermaid:
		return IdentityMermaid
	case KindEscape:
		return IdentityEscape
	default:
		switch c.tigresAs {
		case TigresPirate:
			return IdentityPirate
		case TigresEscape:
			return IdentityEscape
		}
		return IdentityUnresolved
	}
}

func (c Card) IsSuit() bool      { return c.kind == KindSuit }
func (c Card) IsSkullKing() bool { return c.kind == KindSkullKing }
func (c Card) IsMermaid() bool   { return c.kind == KindMermaid }
func (c Card) IsTigres() bool    { return c.kind == KindTigres }
func (c Card) IsPirate() bool    { return c.Identity() == IdentityPirate }
func (c Card) IsEscape() bool    { return c.Identity() == IdentityEscape }

// IsKraken 克拉肯会让整墩作废
func (c Card) IsKraken() bool { return c.kind == KindEscape && c.escape == EscapeKraken }

// IsGold 金币逃跑牌
func (c Card) IsGold() bool { return c.kind == KindEscape && c.escape == EscapeGold }

// FourteenBonus 14 点数字牌的固定奖励：黑色 20，其它 10
func (c Card) FourteenBonus() int {
	if c.kind != KindSuit || c.number != MaxNumber {
		return 0
	}
	if c.color == Black {
		return 20
	}
	return 10
}

// Reset 清除回合内状态，用于回合结束和弃牌回收
func (c *Card) Reset() {
	c.Owner = ""
	c.BeatenCount = 0
	if c.kind == KindTigres {
		c.tigresAs = TigresUnset
	}
}

var colorNames = map[Color]string{
	Green:  "绿",
	Yellow: "黄",
	Purple: "紫",
	Black:  "黑",
}

var colorEmojis = map[Color]string{
	Green:  "🟩",
	Yellow: "🟨",
	Purple: "🟪",
	Black:  "⬛",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "?"
}

// Emoji 花色方块
func (c Color) Emoji() string {
	return colorEmojis[c]
}

var kindNames = map[Kind]string{
	KindSuit:      "数字",
	KindSkullKing: "骷髅王",
	KindPirate:    "海盗",
	KindMermaid:   "美人鱼",
	KindEscape:    "逃跑",
	KindTigres:    "蒂格雷丝",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

func (t TigresAs) String() string {
	switch t {
	case TigresPirate:
		return "pirate"
	case TigresEscape:
		return "escape"
	}
	return "unset"
}

// ParseTigresAs 解析 "pirate" / "escape"
func ParseTigresAs(s string) (TigresAs, error) {
	switch s {
	case "pirate":
		return TigresPirate, nil
	case "escape":
		return TigresEscape, nil
	}
	return TigresUnset, fmt.Errorf("无法识别的蒂格雷丝身份: %q", s)
}

// Emoji 牌面图标
func (c Card) Emoji() string {
	switch c.kind {
	case KindSuit:
		return c.color.Emoji()
	case KindSkullKing:
		return "💀"
	case KindPirate:
		return "⚔️"
	case KindMermaid:
		return "🧜"
	case KindTigres:
		return "🦸"
	}
	switch c.escape {
	case EscapeGold:
		return "💎"
	case EscapeKraken:
		return "🐙"
	}
	return "🏃"
}

// Name 不带图标的牌名
func (c Card) Name() string {
	switch c.kind {
	case KindSuit:
		return c.color.String() + strconv.Itoa(c.number)
	case KindEscape:
		switch c.escape {
		case EscapeGold:
			return "金币"
		case EscapeKraken:
			return "克拉肯"
		}
	}
	return c.kind.String()
}

// Label 展示用标签，已声明的蒂格雷丝附带其身份
func (c Card) Label() string {
	label := c.Emoji() + " " + c.Name()
	switch c.TigresAs() {
	case TigresPirate:
		label += " (⚔️ 海盗)"
	case TigresEscape:
		label += " (🏃 逃跑)"
	}
	return label
}

func (c Card) String() string {
	return c.Label()
}
