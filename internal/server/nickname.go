package server

import "math/rand/v2"

// 昵称词库
var (
	adjectives = []string{
		"勇敢的", "独眼的", "狡猾的", "醉醺醺的", "神秘的",
		"贪财的", "沉稳的", "暴躁的", "幸运的", "迷路的",
		"机智的", "潇洒的", "传奇的", "霸气的", "淡定的",
	}

	nouns = []string{
		"水手", "船长", "大副", "炮手", "厨子",
		"领航员", "瞭望手", "鹦鹉", "海鸥", "寻宝人",
		"海盗", "船医", "木匠", "舵手", "小船童",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	return adjectives[rand.IntN(len(adjectives))] + nouns[rand.IntN(len(nouns))]
}
