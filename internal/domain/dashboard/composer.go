package dashboard

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"handyhub/internal/domain"
	"handyhub/internal/domain/booking"
	"handyhub/internal/domain/catalog"
	"handyhub/internal/domain/handyman"
	"handyhub/internal/domain/profile"
	"handyhub/internal/domain/stats"
	"handyhub/internal/pkg/apperr"
)

type Bookings interface {
	List(ctx context.Context, q booking.ListQuery) ([]booking.Booking, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*booking.Booking, error)
}

type Services interface {
	ByID(ctx context.Context) (map[int64]catalog.Service, error)
}

type Contacts interface {
	Contact(ctx context.Context, id int64) (profile.Contact, error)
}

type Handymen interface {
	Get(ctx context.Context, id int64) (*handyman.Profile, error)
}

type Overviews interface {
	Overview(ctx context.Context) (*stats.Overview, error)
}

// Composer builds views. stats may be nil, in which case admin dashboards
// carry no overview.
type Composer struct {
	bookings Bookings
	services Services
	contacts Contacts
	handymen Handymen
	stats    Overviews
}

func NewComposer(bookings Bookings, services Services, contacts Contacts, handymen Handymen, stats Overviews) *Composer {
	return &Composer{
		bookings: bookings,
		services: services,
		contacts: contacts,
		handymen: handymen,
		stats:    stats,
	}
}

type ServiceSummary struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	BasePrice decimal.Decimal `json:"base_price"`
}

type HandymanSummary struct {
	ID           int64  `json:"id"`
	BusinessName string `json:"business_name"`
}

// Item is one booking as shown on a dashboard.
type Item struct {
	Booking  booking.Booking  `json:"booking"`
	Service  *ServiceSummary  `json:"service,omitempty"`
	Customer *profile.Contact `json:"customer,omitempty"`
	Handyman *HandymanSummary `json:"handyman,omitempty"`
	Actions  []booking.Status `json:"actions"`
}

type Dashboard struct {
	Role     domain.Role            `json:"role"`
	Bookings []Item                 `json:"bookings"`
	Counts   map[booking.Status]int `json:"counts"`
	Eligible *bool                  `json:"eligible,omitempty"`
	Stats    *stats.Overview        `json:"stats,omitempty"`
}

// Items drains the view's bookings and enriches each one.
func (c *Composer) Items(ctx context.Context, v View) ([]Item, error) {
	e, err := c.enricher(ctx, v)
	if err != nil {
		return nil, err
	}
	items := []Item{}
	for b, err := range v.VisibleBookings(ctx) {
		if err != nil {
			return nil, err
		}
		item, err := e.item(ctx, b)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Item returns one visible booking, enriched. Bookings outside the view
// are reported as not found.
func (c *Composer) Item(ctx context.Context, v View, id int64) (*Item, error) {
	b, err := c.bookings.Get(ctx, v.Actor(), id)
	if err != nil {
		return nil, err
	}
	e, err := c.enricher(ctx, v)
	if err != nil {
		return nil, err
	}
	item, err := e.item(ctx, *b)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Composer) build(ctx context.Context, v View) (*Dashboard, error) {
	items, err := c.Items(ctx, v)
	if err != nil {
		return nil, err
	}
	counts := make(map[booking.Status]int, len(booking.Statuses))
	for _, s := range booking.Statuses {
		counts[s] = 0
	}
	for _, it := range items {
		counts[it.Booking.Status]++
	}
	return &Dashboard{Role: v.Actor().Role, Bookings: items, Counts: counts}, nil
}

// enricher memoises lookups for the length of one request.
type enricher struct {
	c        *Composer
	view     View
	services map[int64]catalog.Service
	contacts map[int64]*profile.Contact
	handymen map[int64]*HandymanSummary
}

func (c *Composer) enricher(ctx context.Context, v View) (*enricher, error) {
	services, err := c.services.ByID(ctx)
	if err != nil {
		return nil, err
	}
	return &enricher{
		c:        c,
		view:     v,
		services: services,
		contacts: map[int64]*profile.Contact{},
		handymen: map[int64]*HandymanSummary{},
	}, nil
}

func (e *enricher) item(ctx context.Context, b booking.Booking) (Item, error) {
	item := Item{Booking: b, Actions: e.view.AvailableActions(b)}
	if item.Actions == nil {
		item.Actions = []booking.Status{}
	}

	if s, ok := e.services[b.ServiceID]; ok {
		item.Service = &ServiceSummary{ID: s.ID, Name: s.Name, Category: s.Category, BasePrice: s.BasePrice}
	}

	customer, err := e.contact(ctx, b.CustomerID)
	if err != nil {
		return Item{}, err
	}
	item.Customer = customer

	if b.HasHandyman() {
		h, err := e.handyman(ctx, *b.HandymanID)
		if err != nil {
			return Item{}, err
		}
		item.Handyman = h
	}
	return item, nil
}

func (e *enricher) contact(ctx context.Context, id int64) (*profile.Contact, error) {
	if c, ok := e.contacts[id]; ok {
		return c, nil
	}
	c, err := e.c.contacts.Contact(ctx, id)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		e.contacts[id] = nil
		return nil, nil
	case err != nil:
		return nil, err
	}
	e.contacts[id] = &c
	return &c, nil
}

func (e *enricher) handyman(ctx context.Context, id int64) (*HandymanSummary, error) {
	if h, ok := e.handymen[id]; ok {
		return h, nil
	}
	p, err := e.c.handymen.Get(ctx, id)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		e.handymen[id] = nil
		return nil, nil
	case err != nil:
		return nil, err
	}
	h := &HandymanSummary{ID: p.ID, BusinessName: p.BusinessName}
	e.handymen[id] = h
	return h, nil
}
