package domain

import (
	"encoding/json"
)

// HistoryCap is the number of daily snapshots retained (about two years).
const HistoryCap = 730

// Ledger is the insertion-ordered, date-unique sequence of daily snapshots.
type Ledger []DaySnapshot

// Record replaces the snapshot with the same date in place, or appends it,
// then drops the oldest entries until the ledger fits HistoryCap.
func (l *Ledger) Record(s DaySnapshot) {
	entries := *l

	replaced := false
	for i := range entries {
		if entries[i].Date == s.Date {
			entries[i] = s
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, s)
	}

	*l = entries.capped()
}

func (l Ledger) capped() Ledger {
	if len(l) <= HistoryCap {
		return l
	}
	kept := make(Ledger, HistoryCap)
	copy(kept, l[len(l)-HistoryCap:])
	return kept
}

func (l Ledger) Find(date string) (DaySnapshot, bool) {
	for _, s := range l {
		if s.Date == date {
			return s, true
		}
	}
	return DaySnapshot{}, false
}

func (l Ledger) ByDate() map[string]DaySnapshot {
	index := make(map[string]DaySnapshot, len(l))
	for _, s := range l {
		index[s.Date] = s
	}
	return index
}

// Last returns up to n of the most recently recorded snapshots.
func (l Ledger) Last(n int) []DaySnapshot {
	if n <= 0 {
		return []DaySnapshot{}
	}
	if n > len(l) {
		n = len(l)
	}
	out := make([]DaySnapshot, n)
	copy(out, l[len(l)-n:])
	return out
}

func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	copy(out, l)
	for i := range out {
		if load := out[i].CognitiveLoad; load != nil {
			v := *load
			out[i].CognitiveLoad = &v
		}
	}
	return out
}

// UnmarshalJSON never fails: a document that is not an array decodes as an
// empty ledger, entries that cannot be decoded or carry an invalid date are
// skipped, and duplicated dates collapse onto their first position.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = Ledger{}
		return nil
	}

	out := make(Ledger, 0, len(raw))
	for _, item := range raw {
		var s DaySnapshot
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		if !IsValidDay(s.Date) {
			continue
		}
		out.Record(s)
	}

	*l = out.capped()
	return nil
}
