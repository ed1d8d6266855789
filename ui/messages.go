package ui

type savedMsg struct {
	buyers     int
	properties int
	err        error
}
