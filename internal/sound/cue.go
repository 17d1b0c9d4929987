// Package sound plays short UI cues: synthesized sine blips, or sample files
// configured to replace them.
package sound

// Cue names a UI event that can make a sound.
type Cue int

const (
	Default Cue = iota
	Hover
	Click
	Success
)

func (c Cue) String() string {
	switch c {
	case Hover:
		return "hover"
	case Click:
		return "click"
	case Success:
		return "success"
	default:
		return "default"
	}
}

// Frequency is the pitch of the synthesized tone for c, in Hz.
func (c Cue) Frequency() float64 {
	switch c {
	case Hover:
		return 800
	case Click:
		return 1000
	case Success:
		return 600
	default:
		return 500
	}
}
