package form

import "time"

// banner tracks the error message on screen. Each message gets a sequence
// number so a timer armed for an older message never hides a newer one.
type banner struct {
	seq     uint64
	visible bool
	msg     string
	timer   stopper
}

type stopper interface {
	Stop() bool
}

func afterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// showError must be called with c.mu held.
func (c *Controller) showError(msg string) {
	c.banner.seq++
	seq := c.banner.seq
	if c.banner.timer != nil {
		c.banner.timer.Stop()
	}
	c.banner.visible = true
	c.banner.msg = msg
	c.view.ShowError(msg)

	if c.dismissAfter > 0 {
		c.banner.timer = c.afterFunc(c.dismissAfter, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.banner.seq == seq {
				c.hideError()
			}
		})
	}
}

// hideError must be called with c.mu held.
func (c *Controller) hideError() {
	if c.banner.timer != nil {
		c.banner.timer.Stop()
		c.banner.timer = nil
	}
	if !c.banner.visible {
		return
	}
	c.banner.visible = false
	c.banner.msg = ""
	c.view.HideError()
}

func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideError()
}
