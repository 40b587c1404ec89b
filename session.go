package stillwater

import "unicode"

// Command is a host-level user action.
type Command uint8

const (
	CommandNone Command = iota
	CommandStart
	CommandToggleMusic
	CommandCancel
)

// Key bindings shared by every host: the digits 1 to 5 start a countdown of
// the matching Durations entry, M toggles music and C cancels.
const (
	KeyToggleMusic = 'm'
	KeyCancel      = 'c'
)

// CommandForKey maps a typed character to a command. For CommandStart the
// second result is the session length in minutes.
func CommandForKey(r rune) (Command, int) {
	r = unicode.ToLower(r)
	switch {
	case r >= '1' && int(r-'1') < len(Durations):
		return CommandStart, Durations[r-'1']
	case r == KeyToggleMusic:
		return CommandToggleMusic, 0
	case r == KeyCancel:
		return CommandCancel, 0
	default:
		return CommandNone, 0
	}
}

// Session joins the countdown to the audio: expiry rings the chime. It is the
// control-thread state a host owns alongside its renderer.
type Session struct {
	Scheduler *FrameScheduler
	Timer     *SessionTimer
	Audio     *AudioController
	closed    bool
}

// NewSession returns an idle session whose timer is driven by a
// FrameScheduler on clock. A nil clock uses the wall clock.
func NewSession(clock Clock) *Session {
	s := &Session{
		Scheduler: NewFrameScheduler(clock),
		Audio:     NewAudioController(),
	}
	s.Timer = NewSessionTimer(s.Scheduler, s.Audio.PlayChime)
	return s
}

// Poll fires due timer ticks. Hosts call it once per frame or tick.
func (s *Session) Poll() {
	if s.closed {
		return
	}
	s.Scheduler.Poll()
}

// Do performs cmd. minutes is only used by CommandStart.
func (s *Session) Do(cmd Command, minutes int) {
	if s.closed {
		return
	}
	switch cmd {
	case CommandStart:
		s.Timer.Start(minutes)
	case CommandToggleMusic:
		s.Audio.ToggleMusic()
	case CommandCancel:
		s.Timer.Cancel()
	}
}

// HandleKey performs the command bound to r and reports whether one was.
func (s *Session) HandleKey(r rune) bool {
	cmd, minutes := CommandForKey(r)
	if cmd == CommandNone {
		return false
	}
	s.Do(cmd, minutes)
	return true
}

// StatusText is the countdown line hosts display.
func (s *Session) StatusText() string {
	if remaining, ok := s.Timer.Remaining(); ok {
		return FormatRemaining(remaining)
	}
	if s.Timer.Status() == StatusExpired {
		return "Session complete"
	}
	return "Choose a session"
}

// MusicText is the music state line hosts display.
func (s *Session) MusicText() string {
	if s.Audio.MusicPlaying() {
		return "Music: on"
	}
	return "Music: off"
}

// HelpText lists the key bindings.
const HelpText = "1-5: 5/10/15/30/60 min  M: music  C: cancel"

// Close cancels the countdown, drops every pending callback and releases the
// audio handles. Later calls do nothing.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.Timer.Cancel()
	s.Scheduler.Clear()
	return s.Audio.Close()
}
