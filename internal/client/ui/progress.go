package ui

import (
	"sync"
	"time"
)

// Progress is the in-flight indicator for a stamp job. It carries a message
// while visible ("Processing…", then "Done") and can hide itself after a
// delay. Overlapping jobs are not serialized; the last writer wins.
type Progress struct {
	mu      sync.Mutex
	visible bool
	message string
	seq     int
}

func NewProgress() *Progress {
	return &Progress{}
}

// Show makes the indicator visible with the given message.
func (p *Progress) Show(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = true
	p.message = message
	p.seq++
}

// SetMessage updates the message without touching visibility.
func (p *Progress) SetMessage(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = message
	p.seq++
}

// Hide hides the indicator immediately.
func (p *Progress) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = false
	p.message = ""
	p.seq++
}

// HideAfter hides the indicator once d has elapsed, unless the indicator
// was touched again in the meantime.
func (p *Progress) HideAfter(d time.Duration) {
	p.mu.Lock()
	seq := p.seq
	p.mu.Unlock()

	time.AfterFunc(d, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.seq == seq {
			p.visible = false
			p.message = ""
		}
	})
}

// State returns the current message and visibility.
func (p *Progress) State() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.message, p.visible
}
