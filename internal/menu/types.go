package menu

// Item is a single menu entry.
type Item struct {
	Name        string   `mapstructure:"name" json:"name"`
	Description string   `mapstructure:"description" json:"description,omitempty"`
	Price       float64  `mapstructure:"price" json:"price"`
	Category    string   `mapstructure:"category" json:"category,omitempty"`
	Options     []string `mapstructure:"options" json:"options,omitempty"` // customization examples
}

// Menu is the full catalog.
type Menu struct {
	Items      []Item   `json:"items"`
	Categories []string `json:"categories,omitempty"`
}

// sizeWords is the closed set of size option values.
var sizeWords = map[string]bool{
	"small":  true,
	"medium": true,
	"large":  true,
}

// HasSizeOptions reports whether the item's options are size values
// (every option is one of small/medium/large).
func (i Item) HasSizeOptions() bool {
	if len(i.Options) == 0 {
		return false
	}
	for _, opt := range i.Options {
		if !sizeWords[opt] {
			return false
		}
	}
	return true
}
