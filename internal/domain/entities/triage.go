package entities

// TriageFacilitySnapshot is the per-facility slice of state embedded in the
// advisor prompt
type TriageFacilitySnapshot struct {
	Name             string `json:"name"`
	AvailableGeneral int    `json:"available_general"`
	AvailableICU     int    `json:"available_icu"`
	Contact          string `json:"contact"`
}

// SnapshotForTriage projects a facility list into the advisor's view
func SnapshotForTriage(facilities []*Facility) []TriageFacilitySnapshot {
	snapshot := make([]TriageFacilitySnapshot, 0, len(facilities))
	for _, f := range facilities {
		snapshot = append(snapshot, TriageFacilitySnapshot{
			Name:             f.Name,
			AvailableGeneral: f.GeneralBeds.Available,
			AvailableICU:     f.ICUBeds.Available,
			Contact:          f.Contact,
		})
	}
	return snapshot
}
