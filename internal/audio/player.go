package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-robbo/internal/config"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
)

// maxVoices bounds how many cues may sound at once; further cues are dropped.
const maxVoices = 16

// Player mixes cue voices into the speaker. It implements the game's cue sink.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	rate    beep.SampleRate
	volume  float64
	started bool
	logger  *log.Logger
}

// NewPlayer creates a player for the given settings. Nothing is opened until Start.
func NewPlayer(cfg config.AudioConfig, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &Player{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(rate),
		volume: cfg.Volume,
		logger: logger.WithPrefix("audio"),
	}
}

// Start opens the speaker. A failure leaves the player silent; callers may ignore it.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		p.logger.Warn("audio unavailable, continuing without sound", "err", err)
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	p.logger.Info("audio started", "rate", int(p.rate), "volume", p.volume)
	return nil
}

// Play queues the voices of one frame's cues. Repeated cues in a frame sound once.
func (p *Player) Play(cues []core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Lock()
	p.enqueue(cues)
	speaker.Unlock()
}

// enqueue adds voices to the mixer. The caller holds the speaker lock when it is running.
func (p *Player) enqueue(cues []core.Cue) int {
	var seen [16]bool
	added := 0
	for _, c := range cues {
		if int(c) < len(seen) {
			if seen[c] {
				continue
			}
			seen[c] = true
		}
		if p.mixer.Len() >= maxVoices {
			break
		}
		v := Voice(c, p.rate)
		if v == nil {
			continue
		}
		p.mixer.Add(withVolume(v, p.volume))
		added++
	}
	return added
}

// Close silences every voice. The speaker itself stays initialized for the process.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.started = false
}
