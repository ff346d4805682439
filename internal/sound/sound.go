//go:build !ci

package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneLength = 120 * time.Millisecond
	soundDir   = "assets/sounds"
)

// Player 终端客户端的音效播放器
type Player struct {
	mu      sync.RWMutex
	buffers map[Cue]*beep.Buffer
	enabled bool
}

func NewPlayer() *Player {
	return &Player{buffers: make(map[Cue]*beep.Buffer)}
}

// Init 初始化声卡，加载音效文件，缺失的音效用合成音代替
func (p *Player) Init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = true

	if err := p.loadFiles(); err != nil {
		log.Warn("加载音效文件失败", "err", err)
	}
	for _, cue := range Cues {
		if _, ok := p.buffers[cue]; ok {
			continue
		}
		buf, err := synthesize(cueTones[cue])
		if err != nil {
			return err
		}
		p.buffers[cue] = buf
	}
	return nil
}

func (p *Player) loadFiles() error {
	files, err := os.ReadDir(soundDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		buf, err := loadFile(filepath.Join(soundDir, file.Name()), ext)
		if err != nil {
			log.Debug("跳过无法解码的音效", "file", file.Name(), "err", err)
			continue
		}
		p.buffers[Cue(strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())))] = buf
	}
	return nil
}

func loadFile(path, ext string) (*beep.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 4})
	buf.Append(s)
	return buf, nil
}

// synthesize 生成一段短促的正弦提示音
func synthesize(freq float64) (*beep.Buffer, error) {
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(beep.Take(sampleRate.N(toneLength), tone))
	return buf, nil
}

// Play 播放音效，未初始化或找不到时静默
func (p *Player) Play(cue Cue) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.enabled {
		return
	}
	if buf, ok := p.buffers[cue]; ok {
		speaker.Play(buf.Streamer(0, buf.Len()))
	}
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		p.enabled = false
		speaker.Close()
	}
}
