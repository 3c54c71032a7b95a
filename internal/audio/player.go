package audio

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrNotLoaded         = errors.New("no track loaded")
)

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".wav":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	".mp3":  func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) },
	".flac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) },
}

// Extensions lists the file patterns Load accepts, for file dialogs.
func Extensions() []string {
	return []string{"*.wav", "*.mp3", "*.flac"}
}

func decoderFor(path string) (decodeFunc, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return dec, nil
}

// TrackName is the file name without directory or extension.
func TrackName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// decode opens and decodes path. The caller owns the returned file.
func decode(path string) (beep.StreamSeekCloser, beep.Format, *os.File, error) {
	dec, err := decoderFor(path)
	if err != nil {
		return nil, beep.Format{}, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, nil, fmt.Errorf("open %s: %w", path, err)
	}
	streamer, format, err := dec(f)
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return streamer, format, f, nil
}

// device is the audio output the player drives.
type device interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Clear()
	Play(s ...beep.Streamer)
}

type speakerDevice struct{}

func (speakerDevice) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (speakerDevice) Clear() { speaker.Clear() }
func (speakerDevice) Play(s ...beep.Streamer) { speaker.Play(s...) }

// Player plays one track at a time through the speaker: decoder -> Tap -> Ctrl.
// Except for the end-of-track flag, all methods are meant to be called from a
// single goroutine (the game loop); speaker state is guarded by speaker.Lock.
type Player struct {
	ringSize int
	out      device

	file     io.Closer
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
	name     string

	initDone bool
	ended    atomic.Bool
}

func NewPlayer(ringSize int) *Player {
	return &Player{ringSize: ringSize, out: speakerDevice{}}
}

// Load stops the current track, decodes path and starts playing it.
func (p *Player) Load(path string) error {
	streamer, format, f, err := decode(path)
	if err != nil {
		return err
	}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := p.out.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
		log.Printf("[audio] speaker initialized at %d Hz", format.SampleRate)
	case p.format.SampleRate != format.SampleRate:
		p.out.Clear()
		p.release()
		if err := p.out.Init(format.SampleRate, bufferSize); err != nil {
			// The old track is gone with the cleared mixer.
			p.initDone = false
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("reinit speaker: %w", err)
		}
		log.Printf("[audio] speaker reinitialized at %d Hz", format.SampleRate)
	default:
		p.out.Clear()
	}
	p.release()

	p.tap = NewTap(streamer, p.ringSize)
	p.ctrl = &beep.Ctrl{Streamer: p.tap}
	p.file = f
	p.streamer = streamer
	p.format = format
	p.name = TrackName(path)
	p.play()

	log.Printf("[audio] playing %q (%s)", p.name, FormatDuration(p.Duration()))
	return nil
}

func (p *Player) play() {
	p.ended.Store(false)
	p.out.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		p.ended.Store(true)
	})))
}

func (p *Player) release() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.tap = nil
}

func (p *Player) Loaded() bool { return p.streamer != nil }

func (p *Player) Paused() bool {
	if p.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

// Playing reports whether audio is currently advancing.
func (p *Player) Playing() bool {
	return p.Loaded() && !p.ended.Load() && !p.Paused()
}

func (p *Player) TrackName() string { return p.name }

// Tap returns the sample tap of the current track, or nil.
func (p *Player) Tap() *Tap { return p.tap }

// TogglePause pauses or resumes. A finished track restarts from the top.
func (p *Player) TogglePause() error {
	if !p.Loaded() {
		return ErrNotLoaded
	}
	if p.ended.Load() {
		if err := p.seek(0); err != nil {
			return err
		}
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		p.play()
		return nil
	}
	speaker.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	speaker.Unlock()
	return nil
}

func (p *Player) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

// SeekBy moves the play head by d, clamped to the track.
func (p *Player) SeekBy(d time.Duration) error {
	if !p.Loaded() {
		return ErrNotLoaded
	}
	return p.seekTime(p.Position() + d)
}

// SeekTo moves the play head to a fraction of the track length.
func (p *Player) SeekTo(fraction float64) error {
	if !p.Loaded() {
		return ErrNotLoaded
	}
	fraction = min(max(fraction, 0), 1)
	return p.seekTime(time.Duration(fraction * float64(p.Duration())))
}

func (p *Player) seekTime(t time.Duration) error {
	return p.seek(p.format.SampleRate.N(t))
}

func (p *Player) seek(pos int) error {
	n := p.streamer.Len()
	pos = clampPosition(pos, n)
	speaker.Lock()
	err := p.streamer.Seek(pos)
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("seek to %d: %w", pos, err)
	}
	p.tap.Clear()
	return nil
}

func clampPosition(pos, length int) int {
	if pos >= length {
		pos = length - 1
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// Close stops playback and releases the track.
func (p *Player) Close() error {
	if p.initDone {
		p.out.Clear()
	}
	p.release()
	return nil
}

// FormatDuration formats a duration as MM:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
