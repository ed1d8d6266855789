package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"propbook/models"
	"propbook/utils"
)

type tab int

const (
	tabBuyers tab = iota
	tabProperties
)

type model struct {
	theme Theme
	deps  Deps

	tab        tab
	buyers     *ListPanel[*models.Buyer]
	properties *ListPanel[*models.Property]

	filtering bool
	filter    textinput.Model

	status    string
	statusErr bool
	width     int
	height    int
}

// Run opens the interactive browser over deps.Manager and blocks until the
// user quits.
func Run(deps Deps) error {
	if deps.Manager == nil {
		return errors.New("ui: nil model manager")
	}
	m := newModel(deps)
	defer m.close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	if deps.Logger == nil {
		deps.Logger = utils.Discard()
	}
	t := DefaultTheme()

	in := textinput.New()
	in.Placeholder = "keywords, e.g. alice bob"
	in.CharLimit = 100
	in.Prompt = "/ "

	mm := deps.Manager
	return model{
		theme:      t,
		deps:       deps,
		tab:        tabBuyers,
		buyers:     NewListPanel("Buyers", t, mm.BuyerViews(), BuyerCard),
		properties: NewListPanel("Properties", t, mm.PropertyViews(), PropertyCard),
		filter:     in,
	}
}

func (m model) close() {
	m.buyers.Close()
	m.properties.Close()
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		gui := m.deps.Manager.GuiSettings()
		gui.WindowWidth, gui.WindowHeight = msg.Width, msg.Height
		m.deps.Manager.SetGuiSettings(gui)
		m.buyers.SetHeight(msg.Height - 6)
		m.properties.SetHeight(msg.Height - 6)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Save failed: %v", msg.err))
		} else {
			m.setStatus(fmt.Sprintf("Saved %d buyers and %d properties", msg.buyers, msg.properties))
		}
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		return m, nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		m.applyFind(strings.Fields(m.filter.Value()))
		m.filter.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mm := m.deps.Manager
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		if m.tab == tabBuyers {
			m.tab = tabProperties
		} else {
			m.tab = tabBuyers
		}
		m.status = ""

	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)

	case "/":
		m.filtering = true
		return m, m.filter.Focus()

	case "a":
		if m.tab == tabBuyers {
			m.report(mm.UpdateFilteredBuyerList(models.ShowAllBuyers))
			mm.ShowFilteredBuyers()
		} else {
			m.report(mm.UpdateFilteredPropertyList(models.ShowAllProperties))
			mm.ShowFilteredProperties()
		}
		m.setStatus("Listed all")

	case "n":
		if m.tab == tabBuyers {
			m.report(mm.UpdateSortedBuyerList(models.BuyersByName))
		} else {
			m.report(mm.UpdateSortedPropertyList(models.PropertiesByName))
		}
		m.setStatus("Sorted by name")

	case "p":
		if m.tab == tabBuyers {
			m.report(mm.UpdateSortedBuyerList(models.BuyersByPriority))
			m.setStatus("Sorted by priority")
		} else {
			m.report(mm.UpdateSortedPropertyList(models.PropertiesByPrice))
			m.setStatus("Sorted by price")
		}

	case "c":
		if m.tab == tabBuyers {
			m.report(mm.UpdateSortedBuyerList(models.BuyersByCreated))
		} else {
			m.report(mm.UpdateSortedPropertyList(models.PropertiesByCreated))
		}
		m.setStatus("Sorted by date added")

	case "d":
		m.deleteHighlighted()

	case "w":
		return m, m.saveCmd()
	}
	return m, nil
}

func (m *model) applyFind(keywords []string) {
	mm := m.deps.Manager
	if len(keywords) == 0 {
		m.setError("Enter at least one keyword")
		return
	}
	if m.tab == tabBuyers {
		if err := mm.UpdateFilteredBuyerList(models.BuyerNameContainsKeywords(keywords)); err != nil {
			m.setError(err.Error())
			return
		}
		mm.ShowFilteredBuyers()
		m.setStatus(fmt.Sprintf("%d buyers listed", m.buyers.Len()))
		return
	}
	if err := mm.UpdateFilteredPropertyList(models.PropertyNameContainsKeywords(keywords)); err != nil {
		m.setError(err.Error())
		return
	}
	mm.ShowFilteredProperties()
	m.setStatus(fmt.Sprintf("%d properties listed", m.properties.Len()))
}

func (m *model) deleteHighlighted() {
	mm := m.deps.Manager
	if m.tab == tabBuyers {
		b, err := mm.DisplayedBuyer(m.buyers.Cursor())
		if err != nil {
			m.setError("No buyer selected")
			return
		}
		if err := mm.DeleteBuyer(b); err != nil {
			m.setError(err.Error())
			return
		}
		m.setStatus("Deleted buyer: " + b.Name)
		return
	}
	p, err := mm.DisplayedProperty(m.properties.Cursor())
	if err != nil {
		m.setError("No property selected")
		return
	}
	if err := mm.DeleteProperty(p); err != nil {
		m.setError(err.Error())
		return
	}
	m.setStatus("Deleted property: " + p.Name)
}

func (m *model) saveCmd() tea.Cmd {
	if m.deps.Save == nil {
		m.setError("Saving is not configured")
		return nil
	}
	prefs := m.deps.Manager.UserPrefs()
	buyers := m.deps.Manager.BuyerBook().Items()
	properties := m.deps.Manager.PropertyBook().Items()
	save := m.deps.Save
	m.setStatus("Saving...")
	return func() tea.Msg {
		err := save(context.Background(), prefs, buyers, properties)
		return savedMsg{buyers: len(buyers), properties: len(properties), err: err}
	}
}

func (m *model) move(delta int) {
	if m.tab == tabBuyers {
		m.buyers.Move(delta)
	} else {
		m.properties.Move(delta)
	}
}

func (m *model) report(err error) {
	if err != nil {
		m.deps.Logger.Error("[ui] %v", err)
		m.setError(err.Error())
	}
}

func (m *model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *model) setError(s string) {
	m.status, m.statusErr = s, true
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	tabs := []string{"Buyers", "Properties"}
	for i := range tabs {
		if tab(i) == m.tab {
			tabs[i] = m.theme.Index.Render("[" + tabs[i] + "]")
		} else {
			tabs[i] = m.theme.Subtitle.Render(" " + tabs[i] + " ")
		}
	}
	mode := displayMode(m.deps.Manager.BuyerViews())
	if m.tab == tabProperties {
		mode = displayMode(m.deps.Manager.PropertyViews())
	}
	header := m.theme.Title.Render("Property Book") + "  " + strings.Join(tabs, " ") +
		"  " + m.theme.Label.Render("("+mode+")")

	var body string
	if m.tab == tabBuyers {
		body = m.buyers.View()
	} else {
		body = m.properties.View()
	}

	var footer string
	switch {
	case m.filtering:
		footer = m.filter.View()
	case m.status != "" && m.statusErr:
		footer = m.theme.Error.Render(m.status)
	case m.status != "":
		footer = m.theme.Subtitle.Render(m.status)
	}

	sortHelp := "p priority"
	if m.tab == tabProperties {
		sortHelp = "p price"
	}
	help := m.theme.Help.Render("tab switch • ↑/↓ move • / find • a all • n name • " +
		sortHelp + " • c added • d delete • w save • q quit")

	return wrap.Render(header + "\n\n" + body + "\n\n" + footer + "\n" + help)
}

var _ tea.Model = model{}
