package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klabast/wb-services/shopping-sunday/internal/calendar"
)

// icsLine writes a single CRLF-terminated iCalendar content line
func icsLine(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\r\n", args...)
}

// icsEvent writes one all-day VEVENT for a shopping Sunday. The UID only
// depends on the date so calendar apps update events in place.
func icsEvent(w io.Writer, d calendar.Date, stamp time.Time) {
	start := d.Time()
	icsLine(w, "BEGIN:VEVENT")
	icsLine(w, "UID:%s@%s", d, ICSUIDDomain)
	icsLine(w, "DTSTAMP:%s", stamp.UTC().Format("20060102T150405Z"))
	icsLine(w, "DTSTART;VALUE=DATE:%s", start.Format("20060102"))
	icsLine(w, "DTEND;VALUE=DATE:%s", start.AddDate(0, 0, 1).Format("20060102"))
	icsLine(w, "SUMMARY:Shopping Sunday")
	icsLine(w, "DESCRIPTION:Stores may open on %s", d)
	icsLine(w, "TRANSP:TRANSPARENT")
	icsLine(w, "END:VEVENT")
}

// RenderICS renders dates as a downloadable iCalendar file
func RenderICS(dates []calendar.Date, year int, stamp time.Time) *Rendered {
	var buf bytes.Buffer

	icsLine(&buf, "BEGIN:VCALENDAR")
	icsLine(&buf, "VERSION:2.0")
	icsLine(&buf, "PRODID:%s", ICSProductID)
	icsLine(&buf, "X-WR-CALNAME:%s", calendarName(year))
	icsLine(&buf, "CALSCALE:GREGORIAN")
	for _, d := range dates {
		icsEvent(&buf, d, stamp)
	}
	icsLine(&buf, "END:VCALENDAR")

	return &Rendered{
		ContentType: "text/calendar; charset=utf-8",
		Disposition: attachment(year, "ics"),
		Body:        buf.Bytes(),
	}
}

// RenderSubscriptionICS renders the iCalendar subscription feed.
// Unlike RenderICS, this is designed for calendar subscriptions:
// - No Content-Disposition attachment header (inline content)
// - Includes METHOD:PUBLISH and refresh interval headers
func RenderSubscriptionICS(dates []calendar.Date, stamp time.Time) *Rendered {
	var buf bytes.Buffer

	icsLine(&buf, "BEGIN:VCALENDAR")
	icsLine(&buf, "VERSION:2.0")
	icsLine(&buf, "PRODID:%s", ICSProductID)
	icsLine(&buf, "METHOD:PUBLISH")
	icsLine(&buf, "X-WR-CALNAME:%s", ICSCalName)
	icsLine(&buf, "CALSCALE:GREGORIAN")
	icsLine(&buf, "X-PUBLISHED-TTL:PT1H")
	for _, d := range dates {
		icsEvent(&buf, d, stamp)
	}
	icsLine(&buf, "END:VCALENDAR")

	return &Rendered{
		ContentType: "text/calendar; charset=utf-8",
		Body:        buf.Bytes(),
	}
}

// RenderCSV renders dates as CSV with one row per shopping Sunday
func RenderCSV(dates []calendar.Date, year int) *Rendered {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "date,weekday")
	for _, d := range dates {
		fmt.Fprintf(&buf, "%s,%s\n", d, d.Weekday())
	}

	return &Rendered{
		ContentType: "text/csv; charset=utf-8",
		Disposition: attachment(year, "csv"),
		Body:        buf.Bytes(),
	}
}

// RenderJSONDownload renders dates as a downloadable JSON document
func RenderJSONDownload(dates []calendar.Date, year int) (*Rendered, error) {
	body, err := json.Marshal(DownloadPayload{
		Year:            year,
		ShoppingSundays: FormatDates(dates),
	})
	if err != nil {
		return nil, err
	}

	return &Rendered{
		ContentType: "application/json; charset=utf-8",
		Disposition: attachment(year, "json"),
		Body:        append(body, '\n'),
	}, nil
}

func calendarName(year int) string {
	if year == 0 {
		return ICSCalName
	}
	return fmt.Sprintf("%s %d", ICSCalName, year)
}

func attachment(year int, ext string) string {
	if year == 0 {
		return fmt.Sprintf("attachment; filename=shopping_sundays.%s", ext)
	}
	return fmt.Sprintf("attachment; filename=shopping_sundays_%d.%s", year, ext)
}
