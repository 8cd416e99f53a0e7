package screencheck

import "time"

// Clock abstracts the blocking waits a Session performs between tmux calls.
type Clock interface {
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
