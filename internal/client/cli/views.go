package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runStats(ctx context.Context) error {
	svc, session, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	stats := svc.Summary()

	fmt.Fprintf(c.out, "=== Statistics for %s ===\n", session.Email)
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Active notes:  %d\n", stats.TotalNotes)
	fmt.Fprintf(c.out, "Archived:      %d\n", stats.Archived)
	fmt.Fprintf(c.out, "Favorites:     %d\n", stats.Favorites)
	fmt.Fprintf(c.out, "Categories:    %d\n", stats.Categories)
	fmt.Fprintf(c.out, "Tags:          %d\n", stats.Tags)
	fmt.Fprintf(c.out, "Notifications: %d (%d unread)\n", stats.Notifications, stats.Unread)

	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Notes created in %d by month:\n", time.Now().Year())
	histogram := svc.MonthlyHistogram(time.Now())
	for month := time.January; month <= time.December; month++ {
		count := histogram[month-1]
		if count == 0 {
			continue
		}
		fmt.Fprintf(c.out, "  %-9s %d\n", month.String(), count)
	}

	return nil
}

func (c *Cli) runCalendar(ctx context.Context) error {
	svc, _, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	days := svc.CalendarDays(now)

	fmt.Fprintf(c.out, "=== %s %d ===\n", now.Month(), now.Year())
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, " Sun  Mon  Tue  Wed  Thu  Fri  Sat")

	// 6 недель по 7 ячеек; дни вне месяца печатаются точкой
	for week := 0; week < 6; week++ {
		for dow := 0; dow < 7; dow++ {
			day := days[week*7+dow]
			switch {
			case !day.InMonth:
				fmt.Fprintf(c.out, "   . ")
			case day.NoteCount > 0:
				fmt.Fprintf(c.out, "%3d*", day.Date.Day())
				fmt.Fprint(c.out, " ")
			default:
				fmt.Fprintf(c.out, "%3d  ", day.Date.Day())
			}
		}
		fmt.Fprintln(c.out)
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "* day with created notes")

	return nil
}
