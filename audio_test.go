package stillwater

import (
	"errors"
	"testing"
)

type fakeTrack struct {
	plays, stops, closes int
	closeErr             error
}

func (f *fakeTrack) Play() { f.plays++ }
func (f *fakeTrack) Stop() { f.stops++ }
func (f *fakeTrack) Close() error {
	f.closes++
	return f.closeErr
}

type fakeSound struct{ plays int }

func (f *fakeSound) Play() { f.plays++ }

func TestToggleMusicIsInvolution(t *testing.T) {
	a := NewAudioController()
	track := &fakeTrack{}
	a.AttachMusic(track)

	if !a.ToggleMusic() {
		t.Fatal("first toggle should start music")
	}
	if a.ToggleMusic() {
		t.Fatal("second toggle should stop music")
	}
	if a.MusicPlaying() {
		t.Error("state not restored after two toggles")
	}
	if track.plays != 1 || track.stops != 1 {
		t.Errorf("plays = %d, stops = %d; want 1, 1", track.plays, track.stops)
	}
}

func TestSetMusicPlayingSameStateIsNoop(t *testing.T) {
	a := NewAudioController()
	track := &fakeTrack{}
	a.AttachMusic(track)

	a.SetMusicPlaying(false)
	if track.stops != 0 {
		t.Errorf("stop issued while already stopped")
	}
	a.SetMusicPlaying(true)
	a.SetMusicPlaying(true)
	if track.plays != 1 {
		t.Errorf("plays = %d, want 1", track.plays)
	}
	if got := a.State(); !got.MusicPlaying {
		t.Errorf("State = %+v, want playing", got)
	}
}

func TestAudioWithoutHandles(t *testing.T) {
	a := NewAudioController()
	if a.ToggleMusic() {
		t.Error("toggle without a track reported playing")
	}
	a.SetMusicPlaying(true)
	if a.MusicPlaying() {
		t.Error("state changed without a track")
	}
	a.PlayChime()
	if err := a.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestPlayChimeRepeats(t *testing.T) {
	a := NewAudioController()
	chime := &fakeSound{}
	a.AttachChime(chime)
	a.PlayChime()
	a.PlayChime()
	if chime.plays != 2 {
		t.Errorf("chime plays = %d, want 2", chime.plays)
	}
}

func TestAttachMusicWhilePlaying(t *testing.T) {
	a := NewAudioController()
	first := &fakeTrack{}
	a.AttachMusic(first)
	a.SetMusicPlaying(true)

	second := &fakeTrack{}
	a.AttachMusic(second)
	if first.stops != 1 {
		t.Errorf("old track stops = %d, want 1", first.stops)
	}
	if second.plays != 1 || !a.MusicPlaying() {
		t.Errorf("new track plays = %d, playing = %v; want 1, true", second.plays, a.MusicPlaying())
	}

	a.AttachMusic(nil)
	if second.stops != 1 || a.MusicPlaying() {
		t.Errorf("detaching did not stop playback")
	}
}

func TestAudioCloseOnce(t *testing.T) {
	a := NewAudioController()
	track := &fakeTrack{closeErr: errors.New("device gone")}
	a.AttachMusic(track)
	a.SetMusicPlaying(true)

	if err := a.Close(); err == nil {
		t.Error("Close swallowed the handle error")
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if track.closes != 1 || track.stops != 1 {
		t.Errorf("closes = %d, stops = %d; want 1, 1", track.closes, track.stops)
	}

	a.AttachChime(&fakeSound{})
	a.PlayChime()
	if a.ToggleMusic() {
		t.Error("closed controller started music")
	}
}
