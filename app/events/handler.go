package events

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
)

type EventHandler struct {
	dispatcher *Dispatcher
	log        *slog.Logger
}

func NewEventHandler(d *Dispatcher, log *slog.Logger) *EventHandler {
	if log == nil {
		log = slog.Default()
	}
	return &EventHandler{
		dispatcher: d,
		log:        log,
	}
}

// HandlePage serves the full storefront document.
func (h *EventHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	templ.Handler(h.dispatcher.Page()).ServeHTTP(w, r)
}

// HandleEvent applies one delegated click and answers with a JSON patch.
// Form fields: action, product_id, category.
func (h *EventHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	// A malformed id coerces to 0, which never matches a product.
	productID, _ := strconv.Atoi(r.PostForm.Get("product_id"))

	ev := Event{
		Action:    Action(r.PostForm.Get("action")),
		ProductID: productID,
		Category:  r.PostForm.Get("category"),
	}

	patch, err := h.dispatcher.Dispatch(r.Context(), ev)
	if err != nil {
		if errors.Is(err, ErrUnknownAction) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.ErrorContext(r.Context(), "dispatch event", slog.String("action", string(ev.Action)), slog.Any("err", err))
		http.Error(w, "Failed to render", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(patch); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
