package adaptor

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"booking-service/internal/data/entity"
	"booking-service/internal/dto/request"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// queryParser collects filter[...] values and remembers every malformed one.
type queryParser struct {
	values url.Values
	errs   map[string]string
}

func newQueryParser(values url.Values) *queryParser {
	return &queryParser{values: values, errs: map[string]string{}}
}

func (p *queryParser) raw(name string) (string, bool) {
	v := strings.TrimSpace(p.values.Get("filter[" + name + "]"))
	return v, v != ""
}

func (p *queryParser) id(name string) *uuid.UUID {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		p.errs[name] = "must be a valid UUID"
		return nil
	}
	return &id
}

func (p *queryParser) flag(name string) *bool {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs[name] = "must be true or false"
		return nil
	}
	return &b
}

func (p *queryParser) number(name string) *int {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs[name] = "must be an integer"
		return nil
	}
	return &n
}

func (p *queryParser) date(name string) *time.Time {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	p.errs[name] = "must be a date time like 2006-01-02T15:04:05"
	return nil
}

func (p *queryParser) text(name string) *string {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	return &v
}

func (p *queryParser) err() map[string]string {
	if len(p.errs) == 0 {
		return nil
	}
	return p.errs
}

func parseAnnouncementQuery(values url.Values) (request.AnnouncementQuery, map[string]string) {
	p := newQueryParser(values)
	query := request.AnnouncementQuery{
		Author:   p.id("author"),
		Movie:    p.id("movie"),
		Free:     p.flag("free"),
		Ticket:   p.number("ticket"),
		Date:     p.date("date"),
		Location: p.text("location"),
	}
	if sub := p.flag("sub"); sub != nil {
		query.Sub = *sub
	}
	return query, p.err()
}

func parseBookingQuery(values url.Values) (request.BookingQuery, map[string]string) {
	p := newQueryParser(values)
	query := request.BookingQuery{
		Role:  string(entity.SideAuthor),
		Movie: p.id("movie"),
		Date:  p.date("date"),
	}
	if role, ok := p.raw("self"); ok {
		query.Role = role
	}
	return query, p.err()
}

func parseSudoBookingQuery(values url.Values) (request.SudoBookingQuery, map[string]string) {
	p := newQueryParser(values)
	query := request.SudoBookingQuery{
		Author: p.id("author"),
		Movie:  p.id("movie"),
		Date:   p.date("date"),
	}
	return query, p.err()
}

// urlID reads a path parameter as a UUID.
func urlID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}
