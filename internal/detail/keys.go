package detail

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Back key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "b"),
			key.WithHelp("esc/b", "back"),
		),
	}
}
