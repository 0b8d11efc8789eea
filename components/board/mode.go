package board

// Mode is the editor restriction regime, resolved at open time.
type Mode int

const (
	// ModeGlobal offers every catalog tab plus the custom tab; the target
	// category is chosen (or created) explicitly.
	ModeGlobal Mode = iota
	// ModeTyped locks the editor to the single tab matching the invoking
	// category's type; the custom tab is disabled entirely.
	ModeTyped
	// ModeGeneral fixes the target category and opens directly on the
	// custom tab.
	ModeGeneral
)

func (m Mode) String() string {
	switch m {
	case ModeTyped:
		return "typed"
	case ModeGeneral:
		return "general"
	default:
		return "global"
	}
}

// ResolveMode determines the operating mode for an editor opening. An empty
// restriction means the global flow. A General restriction pins the custom
// tab. Any other type restricts the editor to that type's tab, provided the
// catalog actually has templates for it; unknown types fall back to the
// global flow. The resolution is recomputed on every open, never cached.
func ResolveMode(catalog *Catalog, restriction CategoryType) Mode {
	if restriction == "" {
		return ModeGlobal
	}
	if restriction == CategoryGeneral {
		return ModeGeneral
	}
	if catalog != nil && catalog.HasTemplates(restriction) {
		return ModeTyped
	}
	return ModeGlobal
}
