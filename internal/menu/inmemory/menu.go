package inmemory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/spf13/viper"

	"restaurant-voice-agent/internal/menu"
	"restaurant-voice-agent/internal/model"
	pkgLog "restaurant-voice-agent/pkg/log"
)

const (
	lookupCacheSize = 512
	lookupCacheTTL  = 10 * time.Minute
)

// Repository is an in-memory menu.Repository seeded from an optional YAML
// file, with a built-in default menu when no file is configured.
type Repository struct {
	l pkgLog.Logger

	mu       sync.RWMutex
	m        menu.Menu
	byName   map[string]menu.Item // normalized name -> item
	menuText string

	// lookups caches fuzzy-resolved spoken names ("burger", "a coke") to the
	// canonical normalized item name. Callers repeat the same phrasings, so
	// the fuzzy scan rarely runs twice for the same wording.
	lookups *expirable.LRU[string, string]
}

// New creates an in-memory menu repository. menuFile may be empty.
func New(l pkgLog.Logger, menuFile string) (*Repository, error) {
	r := &Repository{
		l:       l,
		lookups: expirable.NewLRU[string, string](lookupCacheSize, nil, lookupCacheTTL),
	}

	m, err := loadMenu(menuFile)
	if err != nil {
		return nil, err
	}
	r.install(m)

	return r, nil
}

func loadMenu(menuFile string) (menu.Menu, error) {
	if menuFile == "" {
		return defaultMenu(), nil
	}

	v := viper.New()
	v.SetConfigFile(menuFile)
	if err := v.ReadInConfig(); err != nil {
		return menu.Menu{}, fmt.Errorf("failed to read menu file %q: %w", menuFile, err)
	}

	var m menu.Menu
	if err := v.Unmarshal(&m); err != nil {
		return menu.Menu{}, fmt.Errorf("failed to parse menu file %q: %w", menuFile, err)
	}
	if len(m.Items) == 0 {
		return menu.Menu{}, fmt.Errorf("menu file %q contains no items", menuFile)
	}
	return m, nil
}

func (r *Repository) install(m menu.Menu) {
	byName := make(map[string]menu.Item, len(m.Items))
	for _, item := range m.Items {
		byName[model.NormalizeName(item.Name)] = item
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = m
	r.byName = byName
	r.menuText = formatMenuText(m)
	r.lookups.Purge()
}

// GetMenu returns the full menu.
func (r *Repository) GetMenu(ctx context.Context) (menu.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.m, nil
}

// GetItem looks up an item by name: exact normalized match first, then a
// fuzzy scan ("burger" resolves to "cheeseburger", trailing plural "s" is
// ignored). Fuzzy resolutions are cached.
func (r *Repository) GetItem(ctx context.Context, name string) (menu.Item, bool, error) {
	key := model.NormalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if item, ok := r.byName[key]; ok {
		return item, true, nil
	}

	if canonical, ok := r.lookups.Get(key); ok {
		item, ok := r.byName[canonical]
		return item, ok, nil
	}

	canonical, ok := r.resolveFuzzy(key)
	if !ok {
		return menu.Item{}, false, nil
	}
	r.lookups.Add(key, canonical)
	return r.byName[canonical], true, nil
}

// resolveFuzzy matches a spoken name against the catalog. Preference order:
// singular/plural variants, then substring containment either way, longest
// catalog name first so "cheeseburger" beats "burger" for "a cheeseburger".
// Caller holds at least a read lock.
func (r *Repository) resolveFuzzy(key string) (string, bool) {
	if key == "" {
		return "", false
	}

	singular := strings.TrimSuffix(key, "s")
	if _, ok := r.byName[singular]; ok && singular != "" {
		return singular, true
	}
	if _, ok := r.byName[key+"s"]; ok {
		return key + "s", true
	}

	best := ""
	for canonical := range r.byName {
		if !strings.Contains(canonical, key) && !strings.Contains(key, canonical) {
			continue
		}
		if len(canonical) > len(best) {
			best = canonical
		}
	}
	return best, best != ""
}

// MenuText returns the menu formatted for LLM context.
func (r *Repository) MenuText(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.menuText, nil
}

func formatMenuText(m menu.Menu) string {
	var sb strings.Builder
	sb.WriteString("Menu:")

	categories := m.Categories
	if len(categories) == 0 {
		seen := make(map[string]bool)
		for _, item := range m.Items {
			if item.Category != "" && !seen[item.Category] {
				seen[item.Category] = true
				categories = append(categories, item.Category)
			}
		}
	}

	writeItem := func(item menu.Item) {
		priceStr := ""
		if item.Price > 0 {
			priceStr = fmt.Sprintf(" $%.2f", item.Price)
		}
		descStr := ""
		if item.Description != "" {
			descStr = " - " + item.Description
		}
		optionsStr := ""
		if len(item.Options) > 0 {
			optionsStr = fmt.Sprintf(" (Options: %s)", strings.Join(item.Options, ", "))
		}
		sb.WriteString(fmt.Sprintf("\n  - %s%s%s%s", item.Name, priceStr, descStr, optionsStr))
	}

	if len(categories) == 0 {
		for _, item := range m.Items {
			writeItem(item)
		}
		return sb.String()
	}

	for _, category := range categories {
		sb.WriteString(fmt.Sprintf("\n\n%s:", titleCase(category)))
		for _, item := range m.Items {
			if item.Category == category {
				writeItem(item)
			}
		}
	}
	return sb.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// defaultMenu is the built-in catalog used when no menu file is configured.
func defaultMenu() menu.Menu {
	return menu.Menu{
		Items: []menu.Item{
			{
				Name:        "cheeseburger",
				Description: "Classic cheeseburger",
				Price:       8.99,
				Category:    "burgers",
				Options:     []string{"no onions", "extra cheese", "no pickles"},
			},
			{
				Name:        "fries",
				Description: "Crispy french fries",
				Price:       3.99,
				Category:    "sides",
				Options:     []string{"small", "medium", "large"},
			},
			{
				Name:        "coca cola",
				Description: "Classic cola",
				Price:       2.99,
				Category:    "drinks",
				Options:     []string{"small", "medium", "large"},
			},
		},
		Categories: []string{"burgers", "sides", "drinks"},
	}
}
