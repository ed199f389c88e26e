package canvas

// TypeDynamicCard is the universal card widget. New widget types are added by
// registering them here; the TUI consults the registry when framing a widget.
const TypeDynamicCard = "dynamic_card"

// Config is the static per-widget-type configuration.
type Config struct {
	Label     string
	Resizable bool
	MinWidth  int
	MinHeight int

	// DefaultSize is used when neither the caller nor a prior upsert supplied
	// a size hint.
	DefaultSize Size
}

var widgetRegistry = map[string]Config{
	TypeDynamicCard: {
		Label:       "Universal Card",
		Resizable:   true,
		MinWidth:    36,
		MinHeight:   5,
		DefaultSize: Size{Width: 48, Auto: true},
	},
}

// LookupType returns the configuration for a widget type. Unknown types get
// the dynamic card defaults so an unexpected type still frames sanely.
func LookupType(t string) (Config, bool) {
	cfg, ok := widgetRegistry[t]
	if !ok {
		return widgetRegistry[TypeDynamicCard], false
	}
	return cfg, true
}
