package scoring

import "sort"

// Filter selects records by week and participant.
// Week 0 keeps every week and an empty participant keeps everyone.
func Filter(records []ActivityRecord, week int, participant string) []ActivityRecord {
	out := make([]ActivityRecord, 0, len(records))
	for _, r := range records {
		if week != 0 && r.Week != week {
			continue
		}
		if participant != "" && r.Participant != participant {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Participants lists the distinct named participants, alphabetically
func Participants(records []ActivityRecord) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, r := range records {
		if r.Participant == "" || seen[r.Participant] {
			continue
		}
		seen[r.Participant] = true
		names = append(names, r.Participant)
	}
	sort.Strings(names)
	return names
}
