package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/palemoky/skull-king/internal/game/card"
	"github.com/palemoky/skull-king/internal/game/match"
	"github.com/palemoky/skull-king/internal/storage"
)

// options 一次模拟的参数
type options struct {
	Matches int
	Seats   int
	Rounds  int
	Seed    uint64
}

// seatStats 同名电脑在所有对局中的累计表现
type seatStats struct {
	Name    string
	Wins    int
	Score   int
	Rounds  int
	BidsHit int
}

type report struct {
	Matches   int
	Tricks    int
	Krakens   int
	Recycles  int
	Seats     []*seatStats
	LastMatch string
	Last      []match.Standing
}

// recorder 成绩存档，为 nil 时不写入
type recorder interface {
	RecordRound(ctx context.Context, rec storage.RoundRecord) error
}

// simulate 连续进行 opts.Matches 场全电脑对局
func simulate(ctx context.Context, opts options, rec recorder) (*report, error) {
	cfg := match.DefaultConfig()
	cfg.MaxRounds = opts.Rounds
	r := &report{}
	seats := map[string]*seatStats{}

	for i := range opts.Matches {
		m := match.New(cfg, card.NewSource(opts.Seed+uint64(i)), nil)
		if err := m.SetComputerCount(opts.Seats); err != nil {
			return nil, err
		}
		events, err := m.Start()
		if err != nil {
			return nil, fmt.Errorf("第 %d 场: %w", i+1, err)
		}

		matchID := uuid.NewString()
		for _, e := range events {
			switch e := e.(type) {
			case match.EventDealt:
				if e.Recycled {
					r.Recycles++
				}
			case match.EventTrickResolved:
				r.Tricks++
				if e.HasKraken {
					r.Krakens++
				}
			case match.EventRoundScored:
				for _, s := range e.Results {
					st := seat(seats, s.Name)
					st.Rounds++
					if s.Bid == s.Won {
						st.BidsHit++
					}
				}
				if rec != nil {
					if err := rec.RecordRound(ctx, roundRecord(matchID, e)); err != nil {
						return nil, err
					}
				}
			case match.EventMatchFinished:
				for _, s := range e.Standings {
					st := seat(seats, s.Name)
					st.Score += s.Score
					if s.Rank == 1 {
						st.Wins++
					}
				}
				r.Last = e.Standings
			}
		}
		r.Matches++
		r.LastMatch = matchID
	}

	for _, st := range seats {
		r.Seats = append(r.Seats, st)
	}
	slices.SortFunc(r.Seats, func(a, b *seatStats) int {
		if a.Wins != b.Wins {
			return b.Wins - a.Wins
		}
		return b.Score - a.Score
	})
	return r, nil
}

func seat(seats map[string]*seatStats, name string) *seatStats {
	st, ok := seats[name]
	if !ok {
		st = &seatStats{Name: name}
		seats[name] = st
	}
	return st
}

func roundRecord(matchID string, e match.EventRoundScored) storage.RoundRecord {
	rec := storage.RoundRecord{MatchID: matchID, TableID: "SIM", Round: e.Round}
	for _, s := range e.Results {
		rec.Entries = append(rec.Entries, storage.RoundEntry{
			PlayerID:   s.PlayerID,
			PlayerName: s.Name,
			Computer:   s.Computer,
			Bid:        s.Bid,
			Won:        s.Won,
			Bonus:      s.Bonus.Total(),
			Score:      s.Score,
			Total:      s.Total,
		})
	}
	return rec
}
