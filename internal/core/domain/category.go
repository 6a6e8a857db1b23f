package domain

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownCategory   = errors.New("unknown category")
	ErrEmptyCatalog      = errors.New("category catalog cannot be empty")
	ErrDuplicateCategory = errors.New("duplicate category in catalog")
	ErrCategoryNoAdvice  = errors.New("category advice cannot be empty")
	ErrUnknownCatalog    = errors.New("unknown category set (must be default or wheel)")
)

const (
	CatalogDefault = "default"
	CatalogWheel   = "wheel"
)

type Category string

type CategoryInfo struct {
	ID     Category `json:"id" yaml:"id"`
	Label  string   `json:"label" yaml:"label"`
	Icon   string   `json:"icon" yaml:"icon"`
	Color  string   `json:"color" yaml:"color"`
	Advice string   `json:"advice" yaml:"advice"`
}

// Catalog is the closed, ordered set of life categories. Declaration order
// drives score ordering, tie breaking and radar axis placement.
type Catalog struct {
	entries []CategoryInfo
	index   map[Category]int
}

func NewCatalog(entries []CategoryInfo) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		entries: make([]CategoryInfo, 0, len(entries)),
		index:   make(map[Category]int, len(entries)),
	}

	for _, e := range entries {
		e.ID = Category(strings.ToLower(strings.TrimSpace(string(e.ID))))
		e.Advice = strings.TrimSpace(e.Advice)
		if e.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrUnknownCategory)
		}
		if _, dup := c.index[e.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, e.ID)
		}
		if e.Advice == "" {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNoAdvice, e.ID)
		}
		if e.Label == "" {
			e.Label = string(e.ID)
		}
		if e.Icon == "" {
			e.Icon = DefaultIcon
		}

		c.index[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}

	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.ID
	}
	return out
}

func (c *Catalog) Entries() []CategoryInfo {
	out := make([]CategoryInfo, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Contains(cat Category) bool {
	_, ok := c.index[cat]
	return ok
}

// Index returns the declaration position of cat, or -1.
func (c *Catalog) Index(cat Category) int {
	i, ok := c.index[cat]
	if !ok {
		return -1
	}
	return i
}

func (c *Catalog) Info(cat Category) (CategoryInfo, error) {
	i, ok := c.index[cat]
	if !ok {
		return CategoryInfo{}, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	return c.entries[i], nil
}

// Parse normalizes a user supplied token and checks membership.
func (c *Catalog) Parse(token string) (Category, error) {
	cat := Category(strings.ToLower(strings.TrimSpace(token)))
	if !c.Contains(cat) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, token)
	}
	return cat, nil
}

type catalogFile struct {
	Categories []CategoryInfo `yaml:"categories"`
}

// LoadCatalog reads a YAML table of the form
//
//	categories:
//	  - id: health
//	    label: Health
//	    icon: Heart
//	    advice: Sleep eight hours.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("failed to decode category catalog: %w", err)
	}
	return NewCatalog(f.Categories)
}

func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open category catalog: %w", err)
	}
	defer f.Close()

	return LoadCatalog(f)
}

// MarshalCatalog writes the catalog back in the LoadCatalog format.
func MarshalCatalog(c *Catalog) ([]byte, error) {
	return yaml.Marshal(catalogFile{Categories: c.Entries()})
}

func CatalogByName(name string) (*Catalog, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", CatalogDefault:
		return DefaultCatalog(), nil
	case CatalogWheel:
		return WheelCatalog(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCatalog, name)
	}
}

func mustCatalog(entries []CategoryInfo) *Catalog {
	c, err := NewCatalog(entries)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalog is the five-area set used by the task tracker.
func DefaultCatalog() *Catalog {
	return mustCatalog([]CategoryInfo{
		{ID: "family", Label: "Family", Icon: "Heart", Color: "#ec4899",
			Advice: "Schedule regular time with your family: a call to your parents or a shared dinner goes a long way."},
		{ID: "career", Label: "Career", Icon: "Briefcase", Color: "#8b5cf6",
			Advice: "Break your main work goal into small steps and finish one of them this week."},
		{ID: "growth", Label: "Growth", Icon: "BookOpen", Color: "#3b82f6",
			Advice: "Set aside 20 minutes a day for reading or learning something new."},
		{ID: "leisure", Label: "Leisure", Icon: "Coffee", Color: "#f97316",
			Advice: "Plan real rest: a hobby, a walk or an evening without screens."},
		{ID: "friends", Label: "Friends", Icon: "Users", Color: "#22c55e",
			Advice: "Reach out to a friend you have not talked to in a while and arrange to meet."},
	})
}

// WheelCatalog is the eight-area set used by the life wheel.
func WheelCatalog() *Catalog {
	return mustCatalog([]CategoryInfo{
		{ID: "health", Label: "Health", Icon: "Heart", Color: "#ef4444",
			Advice: "Start with sleep and a daily walk; small physical habits lift every other area."},
		{ID: "career", Label: "Career", Icon: "Briefcase", Color: "#f59e0b",
			Advice: "Define one concrete professional goal for the month and track it weekly."},
		{ID: "finance", Label: "Finance", Icon: "DollarSign", Color: "#eab308",
			Advice: "Write down your expenses for a week and set a fixed amount to save."},
		{ID: "relationships", Label: "Relationships", Icon: "Users", Color: "#84cc16",
			Advice: "Give your partner or close ones undivided attention at least once a day."},
		{ID: "family", Label: "Family", Icon: "Home", Color: "#22c55e",
			Advice: "Plan a regular family ritual, even a short weekly call."},
		{ID: "personal", Label: "Personal growth", Icon: "TrendingUp", Color: "#06b6d4",
			Advice: "Pick one skill to learn and practise it a little every day."},
		{ID: "leisure", Label: "Leisure & hobbies", Icon: "Palette", Color: "#3b82f6",
			Advice: "Block time in your calendar for a hobby and protect it like a meeting."},
		{ID: "environment", Label: "Environment", Icon: "Globe", Color: "#8b5cf6",
			Advice: "Tidy one space you use daily and spend time with people who inspire you."},
	})
}
