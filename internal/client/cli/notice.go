package cli

import "time"

// noticeTTL is how long a transient message stays pending.
const noticeTTL = 3 * time.Second

type notice struct {
	text  string
	until time.Time
}

// notify queues a transient message for the next prompt.
func (a *App) notify(msg string) {
	a.notice = notice{text: msg, until: a.now().Add(noticeTTL)}
}

// flushNotice prints the pending message if it has not expired, then
// drops it either way.
func (a *App) flushNotice() {
	n := a.notice
	a.notice = notice{}
	if n.text != "" && !a.now().After(n.until) {
		printlnFn(n.text)
	}
}
