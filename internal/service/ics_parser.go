package service

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
)

// ── iCalendar import ──
//
// Volunteers import their personal calendar (RFC 5545) to declare when they
// cannot take assignments. Each VEVENT becomes one or more unavailable
// windows: DTSTART/DTEND give the day and clock window, a weekly RRULE is
// expanded into concrete days (honoring INTERVAL, COUNT, UNTIL and EXDATE),
// and all-day events block the whole day. Expansion stops at a fixed
// horizon; windows entirely in the past are dropped.

const (
	icsMaxFileSize  = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout = 30 * time.Second
	icsHorizonDays  = 90
)

// parsedWindow is the ICS parsing intermediate shape.
type parsedWindow struct {
	Day       int64 // epoch-millis day marker, UTC midnight
	StartTime string
	EndTime   string
	Summary   string
}

// FetchICSContent downloads an ICS feed. webcal:// URLs are fetched over
// HTTPS. The response body is capped to guard against hostile feeds.
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fetching ICS: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching ICS: HTTP %d", resp.StatusCode)
	}
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// ParseICS converts an ICS stream into unavailable windows for a volunteer.
// Events it cannot interpret are skipped with a warning rather than failing
// the whole import.
func ParseICS(reader io.Reader, volunteerID string, now time.Time) ([]model.UnavailableTime, []string, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing ICS: %w", err)
	}

	horizon := now.UTC().AddDate(0, 0, icsHorizonDays)
	today := dayMarker(now.UTC())

	var windows []parsedWindow
	var warnings []string
	for _, evt := range cal.Events() {
		parsed, warn := parseUnavailableEvent(evt, now.UTC(), horizon)
		if warn != "" {
			warnings = append(warnings, warn)
			continue
		}
		windows = append(windows, parsed...)
	}

	// dedupe identical windows; drop past days
	seen := make(map[string]bool)
	result := make([]model.UnavailableTime, 0, len(windows))
	for _, w := range windows {
		if w.Day < today {
			continue
		}
		key := fmt.Sprintf("%d:%s:%s", w.Day, w.StartTime, w.EndTime)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, model.UnavailableTime{
			VolunteerID: volunteerID,
			Day:         w.Day,
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			Reason:      w.Summary,
			Source:      model.UnavailableICS,
		})
	}
	return result, warnings, nil
}

// parseUnavailableEvent expands one VEVENT into concrete windows.
func parseUnavailableEvent(evt *ics.VEvent, now, horizon time.Time) ([]parsedWindow, string) {
	summary := ""
	if prop := evt.GetProperty(ics.ComponentPropertySummary); prop != nil {
		summary = strings.TrimSpace(prop.Value)
	}

	dtStart, allDay, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart)
	if err != nil {
		return nil, fmt.Sprintf("skipped event %q: unreadable start time", summary)
	}
	dtEnd, _, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd)
	if err != nil {
		// DTEND is optional; default a one-hour window
		dtEnd = dtStart.Add(time.Hour)
	}

	startClock, endClock := "00:00", "23:59"
	if !allDay {
		startClock = dtStart.Format("15:04")
		endClock = dtEnd.Format("15:04")
		// an event running past midnight blocks the rest of the start
		// day; an inverted window would never match an overlap test
		if dtEnd.Year() != dtStart.Year() || dtEnd.YearDay() != dtStart.YearDay() {
			endClock = "23:59"
		}
	}

	days := expandEventDays(evt, dtStart, horizon)
	if len(days) == 0 {
		return nil, ""
	}

	windows := make([]parsedWindow, 0, len(days))
	for _, day := range days {
		windows = append(windows, parsedWindow{
			Day:       day,
			StartTime: startClock,
			EndTime:   endClock,
			Summary:   summary,
		})
	}
	return windows, ""
}

// expandEventDays returns the day markers an event covers, expanding weekly
// RRULEs. Non-weekly rules fall back to the single start date.
func expandEventDays(evt *ics.VEvent, dtStart, horizon time.Time) []int64 {
	rruleProp := evt.GetProperty(ics.ComponentPropertyRrule)
	if rruleProp == nil {
		return []int64{dayMarker(dtStart)}
	}

	rule := parseRRule(rruleProp.Value)
	if rule.freq != "WEEKLY" {
		return []int64{dayMarker(dtStart)}
	}

	exDates := parseExDates(evt)
	interval := rule.interval
	if interval < 1 {
		interval = 1
	}

	maxDate := horizon
	if !rule.until.IsZero() && rule.until.Before(maxDate) {
		maxDate = rule.until
	}

	var days []int64
	count := 0
	for current := dtStart; !current.After(maxDate); current = current.AddDate(0, 0, 7*interval) {
		if rule.count > 0 && count >= rule.count {
			break
		}
		count++
		if exDates[current.Format("20060102")] {
			continue
		}
		days = append(days, dayMarker(current))
	}
	return days
}

// rruleParams is the subset of RRULE this importer understands.
type rruleParams struct {
	freq     string
	interval int
	count    int
	until    time.Time
}

// parseRRule parses an RRULE value such as FREQ=WEEKLY;COUNT=16;INTERVAL=1.
func parseRRule(value string) rruleParams {
	r := rruleParams{interval: 1}
	for _, part := range strings.Split(value, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToUpper(kv[0]) {
		case "FREQ":
			r.freq = strings.ToUpper(kv[1])
		case "INTERVAL":
			fmt.Sscanf(kv[1], "%d", &r.interval)
		case "COUNT":
			fmt.Sscanf(kv[1], "%d", &r.count)
		case "UNTIL":
			t, err := time.Parse("20060102T150405Z", kv[1])
			if err != nil {
				t, _ = time.Parse("20060102", kv[1])
			}
			r.until = t
		}
	}
	return r
}

// parseExDates collects every EXDATE on an event as yyyymmdd keys.
func parseExDates(evt *ics.VEvent) map[string]bool {
	exDates := make(map[string]bool)
	for _, prop := range evt.Properties {
		if prop.IANAToken != string(ics.ComponentPropertyExdate) {
			continue
		}
		t, err := time.Parse("20060102T150405Z", prop.Value)
		if err != nil {
			t, err = time.Parse("20060102T150405", prop.Value)
			if err != nil {
				t, err = time.Parse("20060102", prop.Value)
			}
		}
		if err == nil {
			exDates[t.UTC().Format("20060102")] = true
		}
	}
	return exDates
}

// parseICSDateTime reads a date-time property, trying the common ICS
// layouts. The second return reports a date-only (all-day) value.
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty) (time.Time, bool, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, false, fmt.Errorf("missing property %s", propName)
	}
	val := prop.Value

	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}

	layouts := []string{"20060102T150405Z", "20060102T150405", "20060102"}
	for _, layout := range layouts {
		t, err := time.Parse(layout, val)
		if err != nil {
			continue
		}
		allDay := layout == "20060102"
		if strings.HasSuffix(layout, "Z") {
			return t.UTC(), allDay, nil
		}
		if tzid != "" {
			if loc, err := time.LoadLocation(tzid); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), allDay, nil
			}
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), allDay, nil
	}

	return time.Time{}, false, fmt.Errorf("unparseable date: %s", val)
}

// dayMarker truncates a time to its UTC midnight expressed in epoch millis,
// the day representation stored on requests and unavailable windows.
func dayMarker(t time.Time) int64 {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.UnixMilli()
}
