package ui

import (
	"strconv"
	"strings"

	"propbook/book"
	"propbook/view"
)

// ListPanel shows the displayed view of one book as a column of cards.
// It follows the view state: when the state switches between the filtered
// and sorted views the panel rebinds, and when the bound view recomputes
// the panel redraws from it.
type ListPanel[T book.Record[T]] struct {
	title  string
	theme  Theme
	render func(Theme, T, int) string

	source        view.List[T]
	unsubSource   func()
	unsubDisplay  func()
	cursor        int
	height        int
	redrawPending bool
}

// NewListPanel binds a panel to state and shows its current display.
func NewListPanel[T book.Record[T]](title string, theme Theme, state *view.State[T],
	render func(Theme, T, int) string) *ListPanel[T] {
	p := &ListPanel[T]{title: title, theme: theme, render: render}
	p.SetSource(state.CurrentDisplay())
	p.unsubDisplay = state.OnDisplayChange(p.SetSource)
	return p
}

// SetSource rebinds the panel to list.
func (p *ListPanel[T]) SetSource(list view.List[T]) {
	if p.unsubSource != nil {
		p.unsubSource()
	}
	p.source = list
	p.unsubSource = list.Subscribe(p.onChange)
	p.onChange()
}

func (p *ListPanel[T]) onChange() {
	p.redrawPending = true
	if n := p.source.Len(); p.cursor >= n {
		p.cursor = max(n-1, 0)
	}
}

// Source returns the list the panel is bound to.
func (p *ListPanel[T]) Source() view.List[T] {
	return p.source
}

// Len returns the number of records on screen.
func (p *ListPanel[T]) Len() int {
	return p.source.Len()
}

// Cursor returns the 1-based index of the highlighted card, or 0 when the
// list is empty.
func (p *ListPanel[T]) Cursor() int {
	if p.source.Len() == 0 {
		return 0
	}
	return p.cursor + 1
}

// Move shifts the highlight by delta, clamped to the list.
func (p *ListPanel[T]) Move(delta int) {
	n := p.source.Len()
	if n == 0 {
		p.cursor = 0
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), n-1)
}

// SetHeight limits how many lines View may use. Zero means unlimited.
func (p *ListPanel[T]) SetHeight(h int) {
	p.height = h
}

// TakeRedraw reports whether the source changed since the last call.
func (p *ListPanel[T]) TakeRedraw() bool {
	r := p.redrawPending
	p.redrawPending = false
	return r
}

// Close detaches the panel from its view state and list.
func (p *ListPanel[T]) Close() {
	if p.unsubSource != nil {
		p.unsubSource()
		p.unsubSource = nil
	}
	if p.unsubDisplay != nil {
		p.unsubDisplay()
		p.unsubDisplay = nil
	}
}

func (p *ListPanel[T]) View() string {
	var sb strings.Builder
	sb.WriteString(p.theme.Title.Render(p.title))
	sb.WriteString(p.theme.Subtitle.Render(" (" + strconv.Itoa(p.source.Len()) + ")"))
	sb.WriteString("\n")

	if p.source.Len() == 0 {
		sb.WriteString(p.theme.Help.Render("Nothing to show."))
		return sb.String()
	}

	used := 1
	for i := p.firstVisible(); i < p.source.Len(); i++ {
		style := p.theme.Card
		if i == p.cursor {
			style = p.theme.Selected
		}
		card := style.Render(p.render(p.theme, p.source.At(i), i+1))
		h := strings.Count(card, "\n") + 1
		if p.height > 0 && used+h > p.height && i != p.cursor {
			break
		}
		sb.WriteString(card)
		sb.WriteString("\n")
		used += h
	}
	return strings.TrimRight(sb.String(), "\n")
}

// firstVisible keeps the highlighted card on screen by starting a few
// cards above it.
func (p *ListPanel[T]) firstVisible() int {
	if p.height <= 0 {
		return 0
	}
	const approxCardHeight = 8
	perScreen := max(p.height/approxCardHeight, 1)
	if p.cursor < perScreen {
		return 0
	}
	return p.cursor - perScreen + 1
}

// displayMode names what a panel bound to state is showing.
func displayMode[T book.Record[T]](state *view.State[T]) string {
	f := state.Filtered()
	switch {
	case state.IsSorted():
		return "sorted"
	case f.IsFiltered():
		return "filtered " + strconv.Itoa(f.Len()) + " of " + strconv.Itoa(state.Sorted().Len())
	default:
		return "all"
	}
}
