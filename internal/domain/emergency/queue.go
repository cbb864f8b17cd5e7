package emergency

import "sort"

// SortByPriority orders patients for the waiting queue: triage rank first
// (red before orange before yellow before green before blue), earlier
// arrival first within the same rank. Patients without an assessment sort
// after every assessed patient. The sort is stable, so equal-rank,
// equal-arrival patients keep their relative order.
func SortByPriority(patients []*Patient) {
	sort.SliceStable(patients, func(i, j int) bool {
		ri, rj := queueRank(patients[i]), queueRank(patients[j])
		if ri != rj {
			return ri < rj
		}
		return patients[i].ArrivalTime.Before(patients[j].ArrivalTime)
	})
}

func queueRank(p *Patient) int {
	if p.TriageLevel == nil {
		return unassessedRank
	}
	return TriageRank(*p.TriageLevel)
}
