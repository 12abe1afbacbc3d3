package workspace

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/notesphere/notesphere/internal/models"
)

// Производные read-only представления над workspace агрегатом.
// Ничего не мутируют и не персистят.

// Search возвращает активные заметки, у которых заголовок или
// содержимое содержат запрос (без учета регистра). Пустой запрос
// возвращает все активные заметки.
func (s *Service) Search(query string) []models.Note {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.ws.Notes
	}

	var result []models.Note
	for _, n := range s.ws.Notes {
		if strings.Contains(strings.ToLower(n.Title), query) ||
			strings.Contains(strings.ToLower(n.Content), query) {
			result = append(result, n)
		}
	}
	return result
}

// FavoriteNotes возвращает активные заметки из избранного
// в порядке активного списка
func (s *Service) FavoriteNotes() []models.Note {
	var result []models.Note
	for _, n := range s.ws.Notes {
		if s.ws.IsFavorite(n.ID) {
			result = append(result, n)
		}
	}
	return result
}

// CategoryNoteCount возвращает число активных заметок в категории
func (s *Service) CategoryNoteCount(category string) int {
	count := 0
	for _, n := range s.ws.Notes {
		if n.Category == category {
			count++
		}
	}
	return count
}

// TagNoteCount возвращает число активных заметок с тегом
func (s *Service) TagNoteCount(tag string) int {
	tag = strings.ToLower(strings.TrimSpace(tag))
	count := 0
	for _, n := range s.ws.Notes {
		for _, t := range n.Tags {
			if t == tag {
				count++
				break
			}
		}
	}
	return count
}

// RecentNotes возвращает до limit активных заметок,
// отсортированных по UpdatedAt от новых к старым
func (s *Service) RecentNotes(limit int) []models.Note {
	notes := make([]models.Note, len(s.ws.Notes))
	copy(notes, s.ws.Notes)

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	if limit > 0 && len(notes) > limit {
		notes = notes[:limit]
	}
	return notes
}

// Stats — сводные счетчики workspace
type Stats struct {
	TotalNotes    int
	Archived      int
	Favorites     int
	Categories    int
	Tags          int
	Notifications int
	Unread        int
}

// Summary возвращает сводные счетчики по агрегату
func (s *Service) Summary() Stats {
	return Stats{
		TotalNotes:    len(s.ws.Notes),
		Archived:      len(s.ws.Archived),
		Favorites:     len(s.ws.Favorites),
		Categories:    len(s.ws.Categories),
		Tags:          len(s.ws.Tags),
		Notifications: len(s.ws.Notifications),
		Unread:        s.UnreadCount(),
	}
}

// TimeAgo humanizes the distance between now and t.
// Под часом — "Just now", под сутками — часы, дальше — дни.
func TimeAgo(now, t time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Hour:
		return "Just now"
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	}
}

// CalendarDay — одна ячейка календарной сетки месяца
type CalendarDay struct {
	Date         time.Time
	InMonth      bool // день принадлежит отображаемому месяцу
	NoteCount    int  // активные заметки, созданные в этот день
	CreatedNotes []models.Note
}

// CalendarDays строит сетку 6x7 (42 ячейки) для месяца, содержащего
// anchor: начиная с воскресенья на или перед первым числом месяца.
// Каждой ячейке приписываются активные заметки, созданные в этот день.
func (s *Service) CalendarDays(anchor time.Time) []CalendarDay {
	year, month, _ := anchor.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, anchor.Location())

	// Сетка стартует с воскресенья на или перед первым числом
	start := first.AddDate(0, 0, -int(first.Weekday()))

	byDay := make(map[string][]models.Note)
	for _, n := range s.ws.Notes {
		key := n.CreatedAt.In(anchor.Location()).Format("2006-01-02")
		byDay[key] = append(byDay[key], n)
	}

	days := make([]CalendarDay, 0, 42)
	for i := 0; i < 42; i++ {
		date := start.AddDate(0, 0, i)
		created := byDay[date.Format("2006-01-02")]
		days = append(days, CalendarDay{
			Date:         date,
			InMonth:      date.Month() == month,
			NoteCount:    len(created),
			CreatedNotes: created,
		})
	}
	return days
}

// MonthlyHistogram возвращает 12 счетчиков заметок по месяцу создания
// для года, содержащего anchor. Индекс 0 — январь.
func (s *Service) MonthlyHistogram(anchor time.Time) [12]int {
	var buckets [12]int
	year := anchor.Year()

	for _, n := range s.ws.Notes {
		created := n.CreatedAt.In(anchor.Location())
		if created.Year() == year {
			buckets[created.Month()-1]++
		}
	}
	for _, n := range s.ws.Archived {
		created := n.CreatedAt.In(anchor.Location())
		if created.Year() == year {
			buckets[created.Month()-1]++
		}
	}
	return buckets
}
