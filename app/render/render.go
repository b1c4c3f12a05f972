// Package render projects catalog and cart state into HTML fragments.
//
// Every component renders a whole region so the caller can replace the
// region's markup wholesale. Rendering the same state twice yields the
// same markup.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/mytheresa/storefront/models"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

const (
	featuredTitleLen = 30
	gridTitleLen     = 40
	cartTitleLen     = 30
)

var featuredBadges = [...]string{"Hot Pick", "Most Loved"}

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Featured draws the promotional strip. Only the first two products are used.
func (r *Renderer) Featured(products []models.Product) templ.Component {
	return r.component("featured", featuredCards(products))
}

// Grid draws the product cards, a loading placeholder while the catalog is
// pending, or the empty state.
func (r *Renderer) Grid(products []models.Product, loading bool) templ.Component {
	return r.component("grid", gridView(products, loading))
}

func (r *Renderer) Categories(categories []models.Category, active string) templ.Component {
	return r.component("categories", categoryButtons(categories, active))
}

// Cart draws the checkout panel: line items, footer and total label.
func (r *Renderer) Cart(lines []models.CartLine, total string) templ.Component {
	return r.component("cart", cartView(lines, total))
}

func (r *Renderer) Page(v PageView) templ.Component {
	return r.component("page", pageData{
		Badge:       v.Badge,
		Loading:     v.Loading,
		OverlayOpen: v.OverlayOpen,
		Categories:  categoryButtons(v.Categories, v.ActiveCategory),
		Featured:    featuredCards(v.Featured),
		Grid:        gridView(v.Products, v.Loading),
		Cart:        cartView(v.Lines, v.Total),
	})
}

func (r *Renderer) component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		return nil
	})
}

// String renders c into a string.
func String(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Truncate keeps the first n runes of s and appends an ellipsis.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}
