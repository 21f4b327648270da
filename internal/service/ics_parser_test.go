package service

import (
	"strings"
	"testing"
	"time"
)

func calendarWith(lines ...string) string {
	all := append([]string{"BEGIN:VCALENDAR", "VERSION:2.0"}, lines...)
	all = append(all, "END:VCALENDAR")
	return strings.Join(all, "\r\n")
}

func TestParseICS_WeeklyRRuleExpansion(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, 2) // within the horizon

	content := calendarWith(
		"BEGIN:VEVENT",
		"UID:evt-1",
		"SUMMARY:Night class",
		"DTSTART:"+start.Format("20060102")+"T180000Z",
		"DTEND:"+start.Format("20060102")+"T200000Z",
		"RRULE:FREQ=WEEKLY;COUNT=3",
		"END:VEVENT",
	)

	windows, warnings, err := ParseICS(strings.NewReader(content), "vol-1", now)
	if err != nil {
		t.Fatalf("ParseICS should succeed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(windows) != 3 {
		t.Fatalf("expected 3 expanded windows, got %d", len(windows))
	}
	week := int64(7 * 24 * time.Hour / time.Millisecond)
	for i, w := range windows {
		if w.StartTime != "18:00" || w.EndTime != "20:00" {
			t.Errorf("window %d: unexpected clocks %s-%s", i, w.StartTime, w.EndTime)
		}
		if i > 0 && w.Day-windows[i-1].Day != week {
			t.Errorf("window %d: expected consecutive weeks", i)
		}
	}
}

func TestParseICS_ExDateSkipsOccurrence(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, 2)
	skipped := start.AddDate(0, 0, 7)

	content := calendarWith(
		"BEGIN:VEVENT",
		"UID:evt-1",
		"SUMMARY:Night class",
		"DTSTART:"+start.Format("20060102")+"T180000Z",
		"DTEND:"+start.Format("20060102")+"T200000Z",
		"RRULE:FREQ=WEEKLY;COUNT=3",
		"EXDATE:"+skipped.Format("20060102")+"T180000Z",
		"END:VEVENT",
	)

	windows, _, err := ParseICS(strings.NewReader(content), "vol-1", now)
	if err != nil {
		t.Fatalf("ParseICS should succeed: %v", err)
	}
	if len(windows) != 2 {
		t.Errorf("expected the excluded occurrence to be dropped, got %d windows", len(windows))
	}
}

func TestParseICS_AllDayEventBlocksWholeDay(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	day := now.AddDate(0, 0, 5)

	content := calendarWith(
		"BEGIN:VEVENT",
		"UID:evt-1",
		"SUMMARY:Out of town",
		"DTSTART:"+day.Format("20060102"),
		"DTEND:"+day.AddDate(0, 0, 1).Format("20060102"),
		"END:VEVENT",
	)

	windows, _, err := ParseICS(strings.NewReader(content), "vol-1", now)
	if err != nil {
		t.Fatalf("ParseICS should succeed: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if windows[0].StartTime != "00:00" || windows[0].EndTime != "23:59" {
		t.Errorf("expected a whole-day block, got %s-%s", windows[0].StartTime, windows[0].EndTime)
	}
}

func TestParseICS_OvernightEventBlocksRestOfStartDay(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, 3)

	content := calendarWith(
		"BEGIN:VEVENT",
		"UID:evt-1",
		"SUMMARY:Night shift",
		"DTSTART:"+start.Format("20060102")+"T220000Z",
		"DTEND:"+start.AddDate(0, 0, 1).Format("20060102")+"T020000Z",
		"END:VEVENT",
	)

	windows, _, err := ParseICS(strings.NewReader(content), "vol-1", now)
	if err != nil {
		t.Fatalf("ParseICS should succeed: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	// the end is clamped to the start day; 22:00-02:00 would be an
	// inverted window that never matches an overlap test
	if windows[0].StartTime != "22:00" || windows[0].EndTime != "23:59" {
		t.Errorf("expected 22:00-23:59, got %s-%s", windows[0].StartTime, windows[0].EndTime)
	}
}

func TestParseICS_PastEventsDropped(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -14)

	content := calendarWith(
		"BEGIN:VEVENT",
		"UID:evt-1",
		"SUMMARY:Old appointment",
		"DTSTART:"+past.Format("20060102")+"T090000Z",
		"DTEND:"+past.Format("20060102")+"T100000Z",
		"END:VEVENT",
	)

	windows, _, err := ParseICS(strings.NewReader(content), "vol-1", now)
	if err != nil {
		t.Fatalf("ParseICS should succeed: %v", err)
	}
	if len(windows) != 0 {
		t.Errorf("expected past windows to be dropped, got %d", len(windows))
	}
}
