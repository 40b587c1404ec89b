package stillwater

// Track is a looping background track.
type Track interface {
	Play()
	Stop()
}

// Sound is a one-shot clip. Each Play starts an independent playback.
type Sound interface {
	Play()
}

// Closer is implemented by audio handles that hold resources.
type Closer interface {
	Close() error
}

// AudioState is the observable audio state.
type AudioState struct {
	MusicPlaying bool
}

// AudioController owns the music and chime handles. Every operation is a
// silent no-op while the relevant handle is not attached.
//
// Like SessionTimer it runs on the host's control goroutine and does no
// locking.
type AudioController struct {
	music  Track
	chime  Sound
	state  AudioState
	closed bool
}

// NewAudioController returns a controller with no handles attached.
func NewAudioController() *AudioController {
	return &AudioController{}
}

// AttachMusic installs the looping track. Replacing a playing track stops
// the old one and starts the new one.
func (a *AudioController) AttachMusic(t Track) {
	if a.closed {
		return
	}
	if a.music != nil && a.state.MusicPlaying {
		a.music.Stop()
	}
	a.music = t
	if a.music == nil {
		a.state.MusicPlaying = false
		return
	}
	if a.state.MusicPlaying {
		a.music.Play()
	}
}

// AttachChime installs the one-shot expiry clip.
func (a *AudioController) AttachChime(s Sound) {
	if a.closed {
		return
	}
	a.chime = s
}

// MusicPlaying reports whether the track is playing.
func (a *AudioController) MusicPlaying() bool {
	return a.state.MusicPlaying
}

// State returns the current audio state.
func (a *AudioController) State() AudioState {
	return a.state
}

// SetMusicPlaying starts or stops the track. It does nothing when target
// already matches the current state or no track is attached.
func (a *AudioController) SetMusicPlaying(target bool) {
	if a.music == nil || target == a.state.MusicPlaying {
		return
	}
	if target {
		a.music.Play()
	} else {
		a.music.Stop()
	}
	a.state.MusicPlaying = target
}

// ToggleMusic flips the track state and returns the new one.
func (a *AudioController) ToggleMusic() bool {
	a.SetMusicPlaying(!a.state.MusicPlaying)
	return a.state.MusicPlaying
}

// PlayChime starts the chime without waiting for it.
func (a *AudioController) PlayChime() {
	if a.chime == nil {
		return
	}
	a.chime.Play()
}

// Close stops the music and releases both handles. Later calls do nothing.
func (a *AudioController) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.SetMusicPlaying(false)

	var firstErr error
	for _, h := range []any{a.music, a.chime} {
		if c, ok := h.(Closer); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	a.music = nil
	a.chime = nil
	return firstErr
}
