package domain

import (
	"time"
)

type Scale string

const (
	ScaleWeek  Scale = "week"
	ScaleMonth Scale = "month"
	ScaleYear  Scale = "year"
)

// Bucket is one point of an analytics window: a day for week and month
// windows, a calendar month for year windows.
type Bucket struct {
	Date   string  `json:"date"`
	Label  string  `json:"label"`
	Water  float64 `json:"water"`
	Sleep  float64 `json:"sleep"`
	Energy float64 `json:"energy"`
	Habits float64 `json:"habits"`
}

type Window struct {
	Scale   Scale    `json:"scale"`
	Title   string   `json:"title"`
	Buckets []Bucket `json:"buckets"`
}

func dayBucket(day string, index map[string]DaySnapshot) Bucket {
	b := Bucket{Date: day}
	if s, ok := index[day]; ok {
		b.Water = s.Water
		b.Sleep = s.Sleep
		b.Energy = float64(s.Energy)
		b.Habits = s.HabitRate() * 100
	}
	return b
}

// WeekBuckets returns the seven days ending on reference shifted by offset
// whole weeks, oldest first. Days without a snapshot are zero-filled.
func (l Ledger) WeekBuckets(reference time.Time, offset int, loc *time.Location) []Bucket {
	index := l.ByDate()
	end := Noon(reference, loc).AddDate(0, 0, offset*7)

	out := make([]Bucket, 0, 7)
	for i := 6; i >= 0; i-- {
		out = append(out, dayBucket(end.AddDate(0, 0, -i).Format(DateLayout), index))
	}
	return out
}

// MonthBuckets returns one bucket per calendar day of year/month.
func (l Ledger) MonthBuckets(year int, month time.Month) []Bucket {
	index := l.ByDate()
	days := DaysInMonth(year, month)

	out := make([]Bucket, 0, days)
	for d := 1; d <= days; d++ {
		day := time.Date(year, month, d, 12, 0, 0, 0, time.UTC).Format(DateLayout)
		out = append(out, dayBucket(day, index))
	}
	return out
}

// YearBuckets returns twelve monthly means. A month without snapshots is
// zero; habit adherence averages each day's rate with zero habits counted as
// a zero rate.
func (l Ledger) YearBuckets(year int) []Bucket {
	type acc struct {
		water, sleep, energy, habits float64
		n                            int
	}
	var months [12]acc

	for _, s := range l {
		t, err := time.Parse(DateLayout, s.Date)
		if err != nil || t.Year() != year {
			continue
		}
		m := &months[t.Month()-1]
		m.water += s.Water
		m.sleep += s.Sleep
		m.energy += float64(s.Energy)
		m.habits += s.HabitRate()
		m.n++
	}

	out := make([]Bucket, 12)
	for i, m := range months {
		b := Bucket{Date: time.Date(year, time.Month(i+1), 1, 12, 0, 0, 0, time.UTC).Format("2006-01")}
		if m.n > 0 {
			n := float64(m.n)
			b.Water = m.water / n
			b.Sleep = m.sleep / n
			b.Energy = m.energy / n
			b.Habits = m.habits / n * 100
		}
		out[i] = b
	}
	return out
}

// Metric selects a bucket field by name. The overview and unknown names
// select energy.
func (b Bucket) Metric(name string) float64 {
	switch name {
	case "water":
		return b.Water
	case "sleep":
		return b.Sleep
	case "habits":
		return b.Habits
	}
	return b.Energy
}

// Average is the mean of the named metric across all buckets of the window.
func (w Window) Average(metric string) float64 {
	if len(w.Buckets) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range w.Buckets {
		sum += b.Metric(metric)
	}
	return sum / float64(len(w.Buckets))
}
