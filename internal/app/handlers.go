package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/klabast/wb-services/shopping-sunday/internal/calendar"
)

// upcomingOnPage caps the list of upcoming dates on the index page
const upcomingOnPage = 5

type pageData struct {
	Status    ShoppingStatus
	DaysUntil int
	Upcoming  []calendar.Date
	Error     string
}

// ServeIndex renders the human-readable status page
func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	resp, err := s.cache.Fetch("index", s.renderIndex)
	if err != nil {
		status, msg := s.statusFailure(err)
		var buf bytes.Buffer
		if err := s.index.Execute(&buf, pageData{Error: msg}); err != nil {
			s.log.Errorf("Error rendering error page: %v", err)
			http.Error(w, msg, status)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if _, err := w.Write(buf.Bytes()); err != nil {
			s.log.Errorf("Error writing error page: %v", err)
		}
		return
	}

	s.writeRendered(w, r, resp)
}

func (s *Server) renderIndex() (*Rendered, error) {
	status, err := BuildStatus(s.table, s.today())
	if err != nil {
		return nil, err
	}

	data := pageData{
		Status:    status,
		DaysUntil: status.DaysUntilNext(),
	}
	for _, d := range s.table.AvailableSundays() {
		if d.After(status.Today) && len(data.Upcoming) < upcomingOnPage {
			data.Upcoming = append(data.Upcoming, d)
		}
	}

	var buf bytes.Buffer
	if err := s.index.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render index: %w", err)
	}
	return &Rendered{ContentType: "text/html; charset=utf-8", Body: buf.Bytes()}, nil
}

// HandleStatus returns today's ShoppingStatus as JSON
func (s *Server) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	resp, err := s.cache.Fetch("api", func() (*Rendered, error) {
		status, err := BuildStatus(s.table, s.today())
		if err != nil {
			return nil, err
		}
		return renderJSON(status.Payload())
	})
	if err != nil {
		code, msg := s.statusFailure(err)
		s.writeJSONError(w, code, msg)
		return
	}

	s.writeRendered(w, r, resp)
}

// HandleShoppingSundays returns every designated date as a JSON array
func (s *Server) HandleShoppingSundays(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	resp, err := s.cache.Fetch("shopping_sundays", func() (*Rendered, error) {
		return renderJSON(FormatDates(s.table.AvailableSundays()))
	})
	if err != nil {
		s.log.Errorf("Error encoding shopping sundays: %v", err)
		s.writeJSONError(w, http.StatusInternalServerError, ErrInternalServer)
		return
	}

	s.writeRendered(w, r, resp)
}

// HandleSubscribe serves the iCalendar subscription feed of all dates
func (s *Server) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	resp, err := s.cache.Fetch("subscribe", func() (*Rendered, error) {
		return RenderSubscriptionICS(s.table.AvailableSundays(), s.now()), nil
	})
	if err != nil {
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	s.writeRendered(w, r, resp)
}

// HandleDownload handles export downloads in ICS, CSV or JSON format
// Query params: format (required), year (optional, defaults to all years)
func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	format := r.URL.Query().Get("format")
	yearStr := r.URL.Query().Get("year")

	switch format {
	case "ics", "csv", "json":
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
		return
	}

	year := 0
	yearKey := "all"
	dates := s.table.AvailableSundays()
	if yearStr != "" {
		var err error
		year, err = strconv.Atoi(yearStr)
		if err != nil {
			http.Error(w, ErrInvalidYear, http.StatusBadRequest)
			return
		}
		dates = s.table.InYear(year)
		if len(dates) == 0 {
			http.Error(w, ErrYearNotFound, http.StatusNotFound)
			return
		}
		yearKey = strconv.Itoa(year)
	}

	resp, err := s.cache.Fetch("download:"+format+":"+yearKey, func() (*Rendered, error) {
		switch format {
		case "ics":
			return RenderICS(dates, year, s.now()), nil
		case "csv":
			return RenderCSV(dates, year), nil
		default:
			return RenderJSONDownload(dates, year)
		}
	})
	if err != nil {
		s.log.Errorf("Error generating %s export: %v", format, err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	s.writeRendered(w, r, resp)
}

// HandleHealth reports liveness
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok\n")); err != nil {
		s.log.Errorf("Error writing health response: %v", err)
	}
}

// statusFailure maps a status error to an HTTP status and user-facing message
func (s *Server) statusFailure(err error) (int, string) {
	if errors.Is(err, calendar.ErrNoUpcomingShoppingSunday) {
		s.metrics.statusErrors.Inc()
		s.log.Warnw("Calendar has no upcoming shopping sunday",
			"today", s.today().String(),
			"last_entry", s.lastEntry(),
		)
		return http.StatusServiceUnavailable, ErrCalendarExpired
	}
	s.log.Errorf("Error building status: %v", err)
	return http.StatusInternalServerError, ErrInternalServer
}

func (s *Server) lastEntry() string {
	sundays := s.table.AvailableSundays()
	if len(sundays) == 0 {
		return ""
	}
	return sundays[len(sundays)-1].String()
}

// writeRendered writes a rendered response, answering conditional requests
// with 304 when the ETag still matches
func (s *Server) writeRendered(w http.ResponseWriter, r *http.Request, resp *Rendered) {
	h := w.Header()
	h.Set("Content-Type", resp.ContentType)
	if resp.Disposition != "" {
		h.Set("Content-Disposition", resp.Disposition)
	}
	if resp.ETag != "" {
		h.Set("ETag", resp.ETag)
	}
	if ttl := s.cache.ttl; ttl > 0 {
		h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(ttl.Seconds())))
	} else {
		h.Set("Cache-Control", "no-cache")
	}

	if resp.ETag != "" && etagMatches(r.Header.Get("If-None-Match"), resp.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if r.Method == http.MethodHead {
		h.Set("Content-Length", strconv.Itoa(len(resp.Body)))
		w.WriteHeader(http.StatusOK)
		return
	}
	if _, err := w.Write(resp.Body); err != nil {
		s.log.Errorf("Error writing response: %v", err)
	}
}

// etagMatches reports whether an If-None-Match header value matches etag
// using weak comparison
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}

// renderJSON encodes v as a JSON response body
func renderJSON(v interface{}) (*Rendered, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return &Rendered{ContentType: "application/json", Body: buf.Bytes()}, nil
}
