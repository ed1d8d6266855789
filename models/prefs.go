package models

import "path/filepath"

// GuiSettings holds the window geometry of the display.
type GuiSettings struct {
	WindowWidth  int  `yaml:"window_width"`
	WindowHeight int  `yaml:"window_height"`
	WindowX      int  `yaml:"window_x"`
	WindowY      int  `yaml:"window_y"`
	Positioned   bool `yaml:"positioned"`
}

// DefaultGuiSettings returns the geometry used before the user resizes anything.
func DefaultGuiSettings() GuiSettings {
	return GuiSettings{WindowWidth: 740, WindowHeight: 600}
}

// UserPrefs holds user-adjustable settings: window geometry and where each
// book is stored.
type UserPrefs struct {
	GuiSettings          GuiSettings `yaml:"gui"`
	BuyerBookFilePath    string      `yaml:"buyer_book_file_path"`
	PropertyBookFilePath string      `yaml:"property_book_file_path"`
}

// NewUserPrefs returns preferences with default values rooted at dataDir.
func NewUserPrefs(dataDir string) *UserPrefs {
	return &UserPrefs{
		GuiSettings:          DefaultGuiSettings(),
		BuyerBookFilePath:    filepath.Join(dataDir, "buyerbook.json"),
		PropertyBookFilePath: filepath.Join(dataDir, "propertybook.json"),
	}
}

// Clone returns an independent copy.
func (p *UserPrefs) Clone() *UserPrefs {
	cp := *p
	return &cp
}

// ResetData overwrites p with the values of other.
func (p *UserPrefs) ResetData(other *UserPrefs) {
	*p = *other
}

// Equal reports whether both preference sets hold the same values.
func (p *UserPrefs) Equal(o *UserPrefs) bool {
	if p == nil || o == nil {
		return p == o
	}
	return *p == *o
}
