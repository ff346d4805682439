package rule

// RoundScore 计算一名玩家的回合得分。
// 预测失误：每差一墩扣 10 分，预测 0 墩失误则扣 回合数×10。
// 预测命中：0 墩得 回合数×10，否则每墩 20 分，再加上奖励。
func RoundScore(bid, won, round, bonus int) int {
	diff := bid - won
	if diff < 0 {
		diff = -diff
	}
	if diff > 0 {
		if bid == 0 {
			return -round * 10
		}
		return -diff * 10
	}
	if won == 0 {
		return round*10 + bonus
	}
	return won*20 + bonus
}
