package render

import (
	"github.com/mytheresa/storefront/models"
)

// PageView is everything the full document needs.
type PageView struct {
	Badge          int
	Loading        bool
	OverlayOpen    bool
	Categories     []models.Category
	ActiveCategory string
	Featured       []models.Product
	Products       []models.Product
	Lines          []models.CartLine
	Total          string
}

type pageData struct {
	Badge       int
	Loading     bool
	OverlayOpen bool
	Categories  []categoryButton
	Featured    []featuredCard
	Grid        gridData
	Cart        cartData
}

type featuredCard struct {
	ID    int
	Title string
	Alt   string
	Image string
	Price string
	Badge string
}

type productCard struct {
	ID       int
	Title    string
	Alt      string
	Image    string
	Price    string
	Quantity int
}

type gridData struct {
	Loading bool
	Cards   []productCard
}

type categoryButton struct {
	Code   string
	Name   string
	Active bool
}

type cartData struct {
	Empty bool
	Items []productCard
	Total string
}

func featuredCards(products []models.Product) []featuredCard {
	if len(products) > len(featuredBadges) {
		products = products[:len(featuredBadges)]
	}
	cards := make([]featuredCard, len(products))
	for i, p := range products {
		cards[i] = featuredCard{
			ID:    p.ID,
			Title: Truncate(p.Title, featuredTitleLen),
			Alt:   p.Title,
			Image: p.Image,
			Price: price(p),
			Badge: featuredBadges[i],
		}
	}
	return cards
}

func gridView(products []models.Product, loading bool) gridData {
	cards := make([]productCard, len(products))
	for i, p := range products {
		cards[i] = card(p, gridTitleLen)
	}
	return gridData{Loading: loading, Cards: cards}
}

func categoryButtons(categories []models.Category, active string) []categoryButton {
	buttons := make([]categoryButton, 0, len(categories)+1)
	buttons = append(buttons, categoryButton{
		Code:   models.AllCategories,
		Name:   "All",
		Active: active == models.AllCategories,
	})
	for _, c := range categories {
		buttons = append(buttons, categoryButton{
			Code:   c.Code,
			Name:   c.Name,
			Active: active == c.Code,
		})
	}
	return buttons
}

func cartView(lines []models.CartLine, total string) cartData {
	items := make([]productCard, len(lines))
	for i, l := range lines {
		items[i] = card(l.Product, cartTitleLen)
		items[i].Quantity = l.Quantity
	}
	return cartData{
		Empty: len(lines) == 0,
		Items: items,
		Total: total,
	}
}

func card(p models.Product, titleLen int) productCard {
	return productCard{
		ID:    p.ID,
		Title: Truncate(p.Title, titleLen),
		Alt:   p.Title,
		Image: p.Image,
		Price: price(p),
	}
}

func price(p models.Product) string {
	return "$" + p.Price.String()
}
