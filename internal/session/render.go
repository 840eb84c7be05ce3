package session

import (
	"fmt"
	"io"
)

// Render draws the whole session to w: a header with the record count
// and theme name, one card per record, the draft form and the status
// line.  Colors come from the active palette and collapse to plain
// text when color is disabled.
func (c *Controller) Render(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	th := c.theme
	th.Header.Fprintf(w, "userdesk: %d record(s) [%s]\n", len(c.users), th.Name)

	if len(c.users) == 0 {
		th.Card.Fprintln(w, "  (no records)")
	}
	for _, u := range c.users {
		th.ID.Fprintf(w, "  #%-4d ", u.ID)
		th.Card.Fprintln(w, u.Card())
	}

	if c.editing {
		th.Label.Fprintf(w, "draft (editing #%d):\n", c.editID)
	} else {
		th.Label.Fprintln(w, "draft:")
	}
	renderField(w, th, "name", c.draft.Name)
	renderField(w, th, "email", c.draft.Email)
	renderField(w, th, "phone", c.draft.Phone)

	if c.status != "" {
		th.Status.Fprintf(w, "status: %s\n", c.status)
	}
}

// renderField prints one form row, flagging empty fields the way the
// form refuses to submit them.
func renderField(w io.Writer, th Theme, label, value string) {
	th.Label.Fprintf(w, "  %-7s", fmt.Sprintf("%s:", label))
	if value == "" {
		th.Warn.Fprintln(w, "(required)")
		return
	}
	th.Card.Fprintln(w, value)
}
