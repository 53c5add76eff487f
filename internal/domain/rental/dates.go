package rental

import (
	"strings"
	"time"
)

// DateLayout formato de fecha de calendario usado en challans y facturas.
const DateLayout = "2006-01-02"

// ParseDate interpreta una fecha de calendario como medianoche UTC.
// Acepta también marcas RFC 3339 y se queda con su día de calendario.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// Day trunca a medianoche UTC conservando el día de calendario de t.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// daysBetween días de calendario de a hasta b (b - a). Ambas a medianoche UTC.
// Se calcula sobre segundos Unix: time.Duration satura pasados ~292 años.
func daysBetween(a, b time.Time) int {
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

func dateKey(t time.Time) string {
	return t.Format(DateLayout)
}
