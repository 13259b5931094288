package cheesyblog

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
)

// MenuPlaceholderImage is shown when a menu item has no image or its image fails to load
const MenuPlaceholderImage = "/images/placeholder.jpg"

// MenuUnavailableMessage replaces the menu grid when the menu could not be loaded
const MenuUnavailableMessage = "Sorry, there was an error loading the menu. Please try again later."

// MenuItem is a single dish on the menu
type MenuItem struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	Price       json.Number `json:"price" validate:"required"`
	ImageURL    string      `json:"imageUrl"`
}

// Image returns the image URL of the item, or the placeholder when it has none
func (m MenuItem) Image() string {
	if m.ImageURL == "" {
		return MenuPlaceholderImage
	}
	return m.ImageURL
}

type menuDocument struct {
	MenuData []MenuItem `json:"menuData" validate:"required,dive"`
}

// LoadMenu decodes a menu document of the form {"menuData": [...]}.
func LoadMenu(r io.Reader) ([]MenuItem, error) {
	var doc menuDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMenu, err)
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMenu, err)
	}

	return doc.MenuData, nil
}

// LoadMenuFile reads a menu document from path
func LoadMenuFile(path string) ([]MenuItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu: %w", err)
	}
	defer f.Close()

	return LoadMenu(f)
}

// MenuView is the state handed to a MenuRenderer. Unavailable replaces the items with an error message.
type MenuView struct {
	Items       []MenuItem
	Unavailable bool
}

// OpenMenu loads the menu at path. A menu that cannot be loaded is logged and reported as unavailable.
func OpenMenu(path string, logger *slog.Logger) MenuView {
	if logger == nil {
		logger = defaultLogger()
	}

	items, err := LoadMenuFile(path)
	if err != nil {
		logger.Warn("menu is unavailable", slog.String("path", path), slog.String("error", err.Error()))
		return MenuView{Unavailable: true}
	}

	logger.Debug("menu loaded", slog.Int("items", len(items)))
	return MenuView{Items: items}
}

const menuGridTemplate = `{{if .Unavailable}}<p>{{unavailable}}</p>
{{else}}{{range .Items}}<div class="menu-item" data-item="{{.Name}}">
<img src="{{.Image}}" alt="{{.Name}}" onerror="this.src='{{placeholder}}'">
<div class="menu-item-content">
<h3 class="menu-item-title">{{.Name}}</h3>
<p class="menu-item-description">{{.Description}}</p>
<p class="menu-item-price">${{.Price}}</p>
</div>
</div>
{{end}}{{end}}`

// MenuHTMLRenderer renders the menu grid markup
type MenuHTMLRenderer struct {
	tmpl *template.Template
}

// NewMenuHTMLRenderer creates a new MenuHTMLRenderer
func NewMenuHTMLRenderer() *MenuHTMLRenderer {
	tmpl := template.Must(template.New("menuGrid").Funcs(template.FuncMap{
		"placeholder": func() string { return MenuPlaceholderImage },
		"unavailable": func() string { return MenuUnavailableMessage },
	}).Parse(menuGridTemplate))

	return &MenuHTMLRenderer{tmpl: tmpl}
}

// Render writes the menu grid for view to w
func (r *MenuHTMLRenderer) Render(w io.Writer, view MenuView) error {
	if err := r.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("error rendering menu: %w", err)
	}
	return nil
}
