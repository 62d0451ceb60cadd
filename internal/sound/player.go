package sound

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/eliksir/internal/logger"
)

// Speaker plays raw PCM. Play blocks until the sound ends or Stop is called.
type Speaker interface {
	Play(pcm []byte) error
	Stop()
}

var _ Speaker = (*Player)(nil)

// ErrNoAudio is returned when no sound device could be opened.
var ErrNoAudio = errors.New("audio device unavailable")

// Player plays PCM through the system audio device via oto.
type Player struct {
	ctx    *oto.Context
	log    *logger.Logger
	mu     sync.Mutex
	active *oto.Player // currently playing, nil when idle
}

// NewPlayer opens the system audio device.
func NewPlayer(log *logger.Logger) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   20 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, errors.Join(ErrNoAudio, err)
	}
	<-ready

	log.Debug("audio player initialized (rate=%d, channels=%d)", SampleRate, ChannelCount)
	return &Player{ctx: ctx, log: log}, nil
}

// Play plays PCM synchronously.
func (p *Player) Play(pcm []byte) error {
	if len(pcm) == 0 {
		return nil
	}
	player := p.ctx.NewPlayer(bytes.NewReader(pcm))

	p.mu.Lock()
	p.active = player
	p.mu.Unlock()

	player.Play()
	for player.IsPlaying() {
		time.Sleep(5 * time.Millisecond)
	}

	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()

	return player.Close()
}

// Stop interrupts the current sound, if any. Safe to call concurrently.
func (p *Player) Stop() {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()

	if active != nil {
		active.Pause()
		p.log.Debug("audio player: interrupted")
	}
}
