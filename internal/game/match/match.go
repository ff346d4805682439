package match

import (
	"fmt"
	"slices"

	"github.com/palemoky/skull-king/internal/apperrors"
	"github.com/palemoky/skull-king/internal/game/card"
	"github.com/palemoky/skull-king/internal/game/rule"
)

// Phase 对局阶段
type Phase int

const (
	PhaseReady     Phase = iota // 等待加入
	PhaseExpecting              // 预测墩数
	PhasePutting                // 出牌
	PhaseFinished               // 整场结束，可再次开始
)

var phaseNames = map[Phase]string{
	PhaseReady:     "ready",
	PhaseExpecting: "expecting",
	PhasePutting:   "putting",
	PhaseFinished:  "finished",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Config 对局参数
type Config struct {
	MaxRounds int
	MaxSeats  int
	MinSeats  int
}

// DefaultConfig 10 回合，2 到 6 个座位
func DefaultConfig() Config {
	return Config{MaxRounds: 10, MaxSeats: 6, MinSeats: 2}
}

// Match 一张牌桌上的对局状态机。
// 所有操作先校验再修改，校验失败时状态不变。Match 本身不加锁，由调用方串行化。
type Match struct {
	cfg    Config
	src    card.Source
	policy Policy

	phase     Phase
	round     int
	humans    []*Player
	computers int

	order   []*Player // 出牌顺序，上一墩的胜者在首位
	turn    int
	draw    []card.Card
	discard []card.Card
	trick   []card.Card

	standings []Standing
	events    []Event
}

// New 创建对局。src 为 nil 时使用全局随机源，policy 为 nil 时电脑随机行动。
func New(cfg Config, src card.Source, policy Policy) *Match {
	if src == nil {
		src = card.DefaultSource()
	}
	if policy == nil {
		policy = NewRandomPolicy(src)
	}
	return &Match{cfg: cfg, src: src, policy: policy}
}

func (m *Match) idle() bool {
	return m.phase == PhaseReady || m.phase == PhaseFinished
}

func (m *Match) requireIdle() error {
	if !m.idle() {
		return fmt.Errorf("%w: 对局进行中", apperrors.ErrStateMismatch)
	}
	return nil
}

func (m *Match) emit(e Event) {
	m.events = append(m.events, e)
}

func (m *Match) flush() []Event {
	events := m.events
	m.events = nil
	return events
}

// --- 入座 ---

// AddPlayer 玩家入座
func (m *Match) AddPlayer(id, name string) error {
	if err := m.requireIdle(); err != nil {
		return err
	}
	if m.human(id) != nil {
		return apperrors.ErrAlreadyJoined
	}
	if len(m.humans) >= m.cfg.MaxSeats {
		return apperrors.ErrTooManySeats
	}
	m.humans = append(m.humans, newPlayer(id, name, false))
	m.computers = min(m.computers, m.cfg.MaxSeats-len(m.humans))
	return nil
}

// RemovePlayer 玩家离座
func (m *Match) RemovePlayer(id string) error {
	if err := m.requireIdle(); err != nil {
		return err
	}
	i := slices.IndexFunc(m.humans, func(p *Player) bool { return p.ID == id })
	if i < 0 {
		return apperrors.ErrNotInTable
	}
	m.humans = slices.Delete(m.humans, i, i+1)
	return nil
}

// SetComputerCount 设置电脑玩家数，总座位数不超过上限
func (m *Match) SetComputerCount(n int) error {
	if err := m.requireIdle(); err != nil {
		return err
	}
	limit := m.cfg.MaxSeats - len(m.humans)
	if n < 0 || n > limit {
		return fmt.Errorf("%w: 最多还能加入 %d 名电脑", apperrors.ErrTooManySeats, limit)
	}
	m.computers = n
	return nil
}

// ComputerCount 当前设置的电脑玩家数
func (m *Match) ComputerCount() int {
	return m.computers
}

// --- 对局流程 ---

// Start 创建电脑座位、打乱座次并发出第一回合的牌
func (m *Match) Start() ([]Event, error) {
	if err := m.requireIdle(); err != nil {
		return nil, err
	}
	if seats := len(m.humans) + m.computers; seats < m.cfg.MinSeats {
		return nil, fmt.Errorf("%w: 至少需要 %d 人，当前 %d 人", apperrors.ErrInsufficientPlayers, m.cfg.MinSeats, seats)
	}

	players := make([]*Player, 0, len(m.humans)+m.computers)
	for _, p := range m.humans {
		p.resetMatch()
		players = append(players, p)
	}
	for i := 1; i <= m.computers; i++ {
		players = append(players, newPlayer(fmt.Sprintf("computer-%d", i), fmt.Sprintf("电脑%d", i), true))
	}

	m.order = shufflePlayers(players, m.src)
	m.draw = card.NewDeck(m.src)
	m.discard = nil
	m.trick = nil
	m.standings = nil
	m.round = 1
	m.beginRound()

	if err := m.drive(); err != nil {
		return m.flush(), err
	}
	return m.flush(), nil
}

// Deal 给每位玩家发 round 张牌，牌堆不足时先洗入弃牌堆，返回是否发生了回收
func (m *Match) Deal() bool {
	recycled := false
	if len(m.draw) < len(m.order)*m.round {
		m.draw = append(m.draw, card.Shuffle(m.discard, m.src)...)
		m.discard = nil
		recycled = true
	}
	for _, p := range m.order {
		n := min(m.round, len(m.draw))
		p.Hand = slices.Clone(m.draw[:n])
		m.draw = m.draw[n:]
	}
	return recycled
}

func (m *Match) beginRound() {
	recycled := m.Deal()
	m.turn = 0
	m.trick = nil
	m.phase = PhaseExpecting
	m.emit(EventDealt{Round: m.round, Recycled: recycled})

	for _, p := range m.order {
		if p.Computer {
			p.Bid = min(max(m.policy.Bid(m.round), 0), m.round)
		}
	}
}

// drive 推进状态直到需要人类玩家行动
func (m *Match) drive() error {
	for {
		switch m.phase {
		case PhaseExpecting:
			if len(m.PendingBidders()) > 0 {
				return nil
			}
			m.startPutting()
		case PhasePutting:
			p := m.order[m.turn]
			if !p.Computer {
				return nil
			}
			if err := m.computerPlay(p); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (m *Match) startPutting() {
	m.phase = PhasePutting
	m.turn = 0
	bids := make([]BidEntry, 0, len(m.order))
	for _, p := range m.order {
		bids = append(bids, BidEntry{PlayerID: p.ID, Name: p.Name, Bid: p.Bid})
	}
	m.emit(EventBidsComplete{Round: m.round, Bids: bids})
}

func (m *Match) computerPlay(p *Player) error {
	legal := rule.LegalIndexes(p.Hand, m.trick)
	if len(legal) == 0 {
		return fmt.Errorf("%w: %s 没有可出的牌", apperrors.ErrIllegalCardPlay, p.Name)
	}
	index := m.policy.Choose(p.Hand, legal)
	if !slices.Contains(legal, index) {
		index = legal[0]
	}
	if p.Hand[index].IsTigres() {
		p.Hand[index].ResolveTigres(m.policy.ResolveTigres())
	}
	return m.place(p, index)
}

// RecordBid 记录预测，最后一人预测后进入出牌阶段
func (m *Match) RecordBid(playerID string, bid int) ([]Event, error) {
	if m.phase != PhaseExpecting {
		return nil, fmt.Errorf("%w: 现在不是预测阶段", apperrors.ErrStateMismatch)
	}
	p := m.Player(playerID)
	if p == nil {
		return nil, apperrors.ErrNotInTable
	}
	if p.HasBid() {
		return nil, fmt.Errorf("%w: 本回合已经预测过了", apperrors.ErrInvalidBid)
	}
	if bid < 0 || bid > m.round {
		return nil, fmt.Errorf("%w: 预测须在 0 到 %d 之间", apperrors.ErrInvalidBid, m.round)
	}

	p.Bid = bid
	if err := m.drive(); err != nil {
		return m.flush(), err
	}
	return m.flush(), nil
}

// SubmitTigresChoice 为手中的蒂格雷丝声明身份
func (m *Match) SubmitTigresChoice(playerID string, as card.TigresAs) error {
	if m.phase != PhasePutting {
		return fmt.Errorf("%w: 现在不是出牌阶段", apperrors.ErrStateMismatch)
	}
	p := m.Player(playerID)
	if p == nil {
		return apperrors.ErrNotInTable
	}
	i := p.tigresIndex()
	if i < 0 {
		return fmt.Errorf("%w: 手中没有蒂格雷丝", apperrors.ErrIllegalCardPlay)
	}
	if as != card.TigresPirate && as != card.TigresEscape {
		return fmt.Errorf("%w: 只能声明为海盗或逃跑", apperrors.ErrUnresolvedTigres)
	}
	p.Hand[i].ResolveTigres(as)
	return nil
}

// PlayCard 出第 index 张手牌，之后由电脑玩家继续直到轮到人类玩家
func (m *Match) PlayCard(playerID string, index int) ([]Event, error) {
	if m.phase != PhasePutting {
		return nil, fmt.Errorf("%w: 现在不是出牌阶段", apperrors.ErrStateMismatch)
	}
	p := m.Player(playerID)
	if p == nil {
		return nil, apperrors.ErrNotInTable
	}
	if m.order[m.turn] != p {
		return nil, fmt.Errorf("%w: 还没轮到您", apperrors.ErrIllegalCardPlay)
	}
	if index < 0 || index >= len(p.Hand) {
		return nil, fmt.Errorf("%w: 没有第 %d 张牌", apperrors.ErrIllegalCardPlay, index+1)
	}
	if !rule.LegalPlays(p.Hand, m.trick)[index] {
		lead, _ := rule.LeadColor(m.trick)
		return nil, fmt.Errorf("%w: 必须跟出%s色", apperrors.ErrIllegalCardPlay, lead)
	}
	if p.Hand[index].Identity() == card.IdentityUnresolved {
		return nil, apperrors.ErrUnresolvedTigres
	}

	if err := m.place(p, index); err != nil {
		return m.flush(), err
	}
	if err := m.drive(); err != nil {
		return m.flush(), err
	}
	return m.flush(), nil
}

func (m *Match) place(p *Player, index int) error {
	c := p.Hand[index]
	p.Hand = slices.Delete(p.Hand, index, index+1)
	c.Owner = p.ID
	m.trick = append(m.trick, c)
	m.emit(EventCardPlayed{PlayerID: p.ID, Name: p.Name, Card: c})

	m.turn++
	if m.turn < len(m.order) {
		return nil
	}
	return m.resolveTrick()
}

func (m *Match) resolveTrick() error {
	j, err := rule.Judge(m.trick)
	if err != nil {
		return err
	}
	winner := m.order[j.WinnerIndex]

	if !j.HasKraken {
		m.trick[j.WinnerIndex].BeatenCount = rule.BeatenCount(m.trick, j.WinnerIndex)
	}
	m.emit(EventTrickResolved{
		WinnerID:   winner.ID,
		WinnerName: winner.Name,
		Card:       m.trick[j.WinnerIndex],
		HasKraken:  j.HasKraken,
		Trick:      m.RenderTrick(),
	})

	if j.HasKraken {
		for i := range m.trick {
			m.trick[i].Reset()
		}
		m.discard = append(m.discard, m.trick...)
	} else {
		winner.Won++
		winner.Collected = append(winner.Collected, m.trick...)
	}

	m.order = append(slices.Clone(m.order[j.WinnerIndex:]), m.order[:j.WinnerIndex]...)
	m.trick = nil
	m.turn = 0

	if len(m.order[0].Hand) == 0 {
		m.endRound()
	}
	return nil
}

func (m *Match) endRound() {
	results := make([]rule.RoundResult, 0, len(m.order))
	for _, p := range m.order {
		results = append(results, rule.RoundResult{PlayerID: p.ID, Bid: p.Bid, Won: p.Won, Collected: p.Collected})
	}
	bonuses := rule.RoundBonuses(results)

	scores := make([]RoundScore, 0, len(m.order))
	for _, p := range m.order {
		b := bonuses[p.ID]
		s := rule.RoundScore(p.Bid, p.Won, m.round, b.Total())
		p.Score += s
		p.History = append(p.History, s)
		p.LastBonus = b
		if p.Bid == p.Won {
			p.Hits++
		}
		scores = append(scores, RoundScore{
			PlayerID: p.ID, Name: p.Name, Computer: p.Computer, Bid: p.Bid, Won: p.Won,
			Bonus: b, Score: s, Total: p.Score,
		})
	}
	m.emit(EventRoundScored{Round: m.round, Results: scores})

	for _, p := range m.order {
		m.discard = append(m.discard, p.resetRound()...)
	}

	m.round++
	if m.round > m.cfg.MaxRounds {
		m.finish()
		return
	}
	m.beginRound()
}

// finish 公布排名并重置牌堆与电脑座位，人类玩家保留在座
func (m *Match) finish() {
	m.standings = rank(m.order)
	m.emit(EventMatchFinished{Standings: slices.Clone(m.standings)})

	m.order = nil
	m.draw = nil
	m.discard = nil
	m.trick = nil
	m.turn = 0
	m.round = 0
	m.computers = 0
	m.phase = PhaseFinished
}

// shufflePlayers 与洗牌相同的抽取方式打乱座次
func shufflePlayers(players []*Player, src card.Source) []*Player {
	rest := slices.Clone(players)
	out := make([]*Player, 0, len(players))
	for len(rest) > 0 {
		i := src.IntN(len(rest))
		out = append(out, rest[i])
		rest = slices.Delete(rest, i, i+1)
	}
	return out
}

// rank 按累计得分降序排名，同分同名次
func rank(players []*Player) []Standing {
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b *Player) int { return b.Score - a.Score })

	standings := make([]Standing, 0, len(sorted))
	for i, p := range sorted {
		r := i + 1
		if i > 0 && p.Score == sorted[i-1].Score {
			r = standings[i-1].Rank
		}
		standings = append(standings, Standing{
			Rank:     r,
			PlayerID: p.ID,
			Name:     p.Name,
			Computer: p.Computer,
			Score:    p.Score,
			History:  slices.Clone(p.History),
			BidsHit:  p.Hits,
		})
	}
	return standings
}
