// Package events turns delegated UI clicks into store mutations and answers
// each one with the regions that must be redrawn.
package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/a-h/templ"

	"github.com/mytheresa/storefront/app/cart"
	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/render"
)

// ErrUnknownAction is returned for an event whose action is not wired.
var ErrUnknownAction = errors.New("unknown action")

type Action string

const (
	ActionAddToCart      Action = "add-to-cart"
	ActionIncrement      Action = "increment"
	ActionDecrement      Action = "decrement"
	ActionRemove         Action = "remove"
	ActionOpenCheckout   Action = "open-checkout"
	ActionCloseCheckout  Action = "close-checkout"
	ActionSetCategory    Action = "set-category"
	ActionRefreshCatalog Action = "refresh-catalog"
)

// Region ids the client replaces wholesale.
const (
	RegionFeatured   = "featured-products"
	RegionGrid       = "products-grid"
	RegionCategories = "category-filter"
	RegionCart       = "checkout-panel"
)

const (
	OverlayOpen   = "open"
	OverlayClosed = "closed"
)

// Event is a click on a control carrying data-action.
type Event struct {
	Action    Action
	ProductID int
	Category  string
}

// Patch describes how the page changes after an event.
type Patch struct {
	Badge   int               `json:"badge"`
	Overlay string            `json:"overlay,omitempty"`
	Loading bool              `json:"loading"`
	Regions map[string]string `json:"regions,omitempty"`
}

// Dispatcher runs one event at a time against the stores.
type Dispatcher struct {
	catalog  *catalog.Store
	cart     *cart.Store
	renderer *render.Renderer

	mu          sync.Mutex
	overlayOpen bool
}

func NewDispatcher(catalog *catalog.Store, cart *cart.Store, renderer *render.Renderer) *Dispatcher {
	return &Dispatcher{
		catalog:  catalog,
		cart:     cart,
		renderer: renderer,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (Patch, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	regions := make(map[string]templ.Component)
	var overlay string

	switch ev.Action {
	case ActionAddToCart:
		// grid and featured markup do not depend on the cart
		d.cart.AddItem(ev.ProductID)
	case ActionIncrement:
		d.cart.IncrementLine(ev.ProductID)
	case ActionDecrement:
		d.cart.DecrementLine(ev.ProductID)
	case ActionRemove:
		d.cart.RemoveLine(ev.ProductID)
	case ActionOpenCheckout:
		d.overlayOpen = true
		overlay = OverlayOpen
	case ActionCloseCheckout:
		d.overlayOpen = false
		overlay = OverlayClosed
	case ActionSetCategory:
		d.catalog.SetCategory(ev.Category)
	case ActionRefreshCatalog:
	default:
		return Patch{}, fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}

	// every catalog region and the loading flag come from one read so a
	// load finishing mid-event cannot mix states
	snap := d.catalog.Snapshot()

	switch ev.Action {
	case ActionIncrement, ActionDecrement, ActionRemove, ActionOpenCheckout:
		regions[RegionCart] = d.cartComponent()
	case ActionSetCategory:
		regions[RegionGrid] = d.renderer.Grid(snap.Products, snap.Loading())
		regions[RegionCategories] = d.renderer.Categories(snap.Categories, snap.Category)
	case ActionRefreshCatalog:
		regions[RegionFeatured] = d.renderer.Featured(snap.Featured)
		regions[RegionGrid] = d.renderer.Grid(snap.Products, snap.Loading())
		regions[RegionCategories] = d.renderer.Categories(snap.Categories, snap.Category)
	}

	patch := Patch{
		Badge:   d.cart.Count(),
		Overlay: overlay,
		Loading: snap.Loading(),
	}
	if len(regions) > 0 {
		patch.Regions = make(map[string]string, len(regions))
	}
	for id, c := range regions {
		html, err := render.String(ctx, c)
		if err != nil {
			return Patch{}, err
		}
		patch.Regions[id] = html
	}
	return patch, nil
}

// Page renders the whole document from the current state.
func (d *Dispatcher) Page() templ.Component {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := d.catalog.Snapshot()
	return d.renderer.Page(render.PageView{
		Badge:          d.cart.Count(),
		Loading:        snap.Loading(),
		OverlayOpen:    d.overlayOpen,
		Categories:     snap.Categories,
		ActiveCategory: snap.Category,
		Featured:       snap.Featured,
		Products:       snap.Products,
		Lines:          d.cart.Lines(),
		Total:          d.cart.Total(),
	})
}

func (d *Dispatcher) cartComponent() templ.Component {
	return d.renderer.Cart(d.cart.Lines(), d.cart.Total())
}
