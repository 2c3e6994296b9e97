// Package view holds the rendered market state served to users. Every field
// write is atomic, so concurrent refresh runs interleave per field and the
// last writer wins.
package view

import "sync"

// Panel is one repeated bounty row.
type Panel struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Value       string `json:"value"`
	Owner       string `json:"owner"`
}

// Snapshot is a point-in-time copy of the view.
type Snapshot struct {
	Revision      uint64  `json:"revision"`
	Account       string  `json:"account"`
	MarketBalance string  `json:"marketBalance"`
	Panels        []Panel `json:"panels"`
}

type View struct {
	mut      sync.RWMutex
	fixed    bool
	revision uint64
	account  string
	balance  string
	panels   []Panel
}

// New returns a view whose panel count follows Resize.
func New() *View {
	return &View{}
}

// NewFixed returns a view with exactly rows panels. Writes to panels past the
// last row are dropped.
func NewFixed(rows int) *View {
	if rows < 0 {
		rows = 0
	}
	return &View{
		fixed:  true,
		panels: make([]Panel, rows),
	}
}

// Fixed reports whether the panel count is fixed.
func (v *View) Fixed() bool {
	return v.fixed
}

// Rows is the current panel count.
func (v *View) Rows() int {
	v.mut.RLock()
	defer v.mut.RUnlock()
	return len(v.panels)
}

func (v *View) SetAccount(account string) {
	v.mut.Lock()
	defer v.mut.Unlock()
	v.account = account
	v.revision++
}

func (v *View) SetMarketBalance(balance string) {
	v.mut.Lock()
	defer v.mut.Unlock()
	v.balance = balance
	v.revision++
}

// SetPanelHeader writes the title, value and owner of row i.
func (v *View) SetPanelHeader(i int, title string, value string, owner string) {
	v.mut.Lock()
	defer v.mut.Unlock()
	if i < 0 || i >= len(v.panels) {
		return
	}
	v.panels[i].Title = title
	v.panels[i].Value = value
	v.panels[i].Owner = owner
	v.revision++
}

func (v *View) SetPanelDescription(i int, description string) {
	v.mut.Lock()
	defer v.mut.Unlock()
	if i < 0 || i >= len(v.panels) {
		return
	}
	v.panels[i].Description = description
	v.revision++
}

// Resize grows or shrinks the panel list to n rows. Existing rows keep their
// content. It is a no-op on a fixed view.
func (v *View) Resize(n int) {
	if v.fixed || n < 0 {
		return
	}

	v.mut.Lock()
	defer v.mut.Unlock()
	if n == len(v.panels) {
		return
	}
	if n < len(v.panels) {
		v.panels = v.panels[:n:n]
	} else {
		v.panels = append(v.panels, make([]Panel, n-len(v.panels))...)
	}
	v.revision++
}

func (v *View) Snapshot() Snapshot {
	v.mut.RLock()
	defer v.mut.RUnlock()

	panels := make([]Panel, len(v.panels))
	copy(panels, v.panels)
	return Snapshot{
		Revision:      v.revision,
		Account:       v.account,
		MarketBalance: v.balance,
		Panels:        panels,
	}
}
