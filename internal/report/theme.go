package report

import "fmt"

// Theme holds the colors applied to the interactive document. It is passed
// explicitly in InteractiveConfig; there is no process-wide theme state.
type Theme struct {
	Name             string
	Background       string
	Text             string
	Border           string
	Stripe           string
	Highlight        string
	HeaderBackground string
	InputBackground  string
	InputText        string
}

// LightTheme is the default appearance
func LightTheme() Theme {
	return Theme{
		Name:             "light",
		Background:       "#ffffff",
		Text:             "#2d3436",
		Border:           "#d7dbe0",
		Stripe:           "#f6f8fa",
		Highlight:        "#eef2ff",
		HeaderBackground: "#f0f2f5",
		InputBackground:  "#ffffff",
		InputText:        "#2d3436",
	}
}

// DarkTheme is a dark appearance
func DarkTheme() Theme {
	return Theme{
		Name:             "dark",
		Background:       "#16181d",
		Text:             "#e4e6eb",
		Border:           "#33363d",
		Stripe:           "#1d2026",
		Highlight:        "#2a2e38",
		HeaderBackground: "#22252c",
		InputBackground:  "#22252c",
		InputText:        "#e4e6eb",
	}
}

// SlateTheme is a muted blue-grey appearance
func SlateTheme() Theme {
	return Theme{
		Name:             "slate",
		Background:       "#f8fafc",
		Text:             "#0f172a",
		Border:           "#cbd5e1",
		Stripe:           "#f1f5f9",
		Highlight:        "#e2e8f0",
		HeaderBackground: "#e2e8f0",
		InputBackground:  "#ffffff",
		InputText:        "#0f172a",
	}
}

// ThemeByName returns the named preset theme
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "light":
		return LightTheme(), nil
	case "dark":
		return DarkTheme(), nil
	case "slate":
		return SlateTheme(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme: %s (available: light, dark, slate)", name)
	}
}
