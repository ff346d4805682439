// simulate 在本地连续进行全电脑对局，用于检验规则与计分
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/palemoky/skull-king/internal/storage"
)

func main() {
	matches := flag.Int("matches", 20, "对局场数")
	seats := flag.Int("seats", 4, "电脑玩家数 (2-6)")
	rounds := flag.Int("rounds", 10, "每场回合数")
	seed := flag.Uint64("seed", 1, "随机种子")
	historyPath := flag.String("history", "", "成绩存档 sqlite 路径，为空不写入")
	flag.Parse()

	logo, _ := pterm.DefaultBigText.WithLetters(putils.LettersFromString("Skull King")).Srender()
	pterm.DefaultCenter.Println(logo)

	var history *storage.History
	if *historyPath != "" {
		h, err := storage.OpenHistory(*historyPath)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		defer func() { _ = h.Close() }()
		history = h
	}

	var rec recorder
	if history != nil {
		rec = history
	}

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("正在模拟 %d 场对局...", *matches))
	r, err := simulate(context.Background(), options{
		Matches: *matches,
		Seats:   *seats,
		Rounds:  *rounds,
		Seed:    *seed,
	}, rec)
	if err != nil {
		spinner.Fail(err.Error())
		os.Exit(1)
	}
	spinner.Success(fmt.Sprintf("完成 %d 场对局", r.Matches))

	printReport(r)

	if history != nil {
		rows, err := history.MatchRounds(context.Background(), r.LastMatch)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		printRounds(rows)
	}
}

func printReport(r *report) {
	pterm.DefaultSection.Println("座位统计")
	data := pterm.TableData{{"玩家", "胜场", "总得分", "场均", "预测命中"}}
	for _, s := range r.Seats {
		hit := 0.0
		if s.Rounds > 0 {
			hit = float64(s.BidsHit) / float64(s.Rounds) * 100
		}
		data = append(data, []string{
			s.Name,
			fmt.Sprint(s.Wins),
			fmt.Sprint(s.Score),
			fmt.Sprintf("%.1f", float64(s.Score)/float64(max(r.Matches, 1))),
			fmt.Sprintf("%.1f%%", hit),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()

	pterm.Info.Printfln("共 %d 墩，海怪作废 %d 墩，弃牌回收 %d 次", r.Tricks, r.Krakens, r.Recycles)

	pterm.DefaultSection.Println("最后一场排名")
	for _, s := range r.Last {
		pterm.Printfln("%d. %s  %s", s.Rank, s.Name, pterm.LightYellow(s.Score))
	}
}

func printRounds(rows []storage.RoundRow) {
	pterm.DefaultSection.Println("最后一场的回合存档")
	data := pterm.TableData{{"回合", "玩家", "预测", "赢墩", "奖励", "得分", "累计"}}
	for _, row := range rows {
		score := pterm.Green(row.Score)
		if row.Score < 0 {
			score = pterm.Red(row.Score)
		}
		data = append(data, []string{
			fmt.Sprint(row.Round), row.PlayerName,
			fmt.Sprint(row.Bid), fmt.Sprint(row.Won), fmt.Sprint(row.Bonus),
			score, fmt.Sprint(row.Total),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
