package journey

// CanCreate reports whether a new shift may be registered on candidate.
// Only the calendar day is compared.
func CanCreate(existing []ShiftRecord, candidate Date) bool {
	return Conflict(existing, candidate, "") == nil
}

// CanReschedule reports whether the record with id may move to candidate
// without colliding with another record.
func CanReschedule(existing []ShiftRecord, id string, candidate Date) bool {
	return Conflict(existing, candidate, id) == nil
}

// Conflict returns the first record on candidate other than exceptID.
func Conflict(existing []ShiftRecord, candidate Date, exceptID string) *ShiftRecord {
	for i := range existing {
		if existing[i].Date == candidate && (exceptID == "" || existing[i].ID != exceptID) {
			return &existing[i]
		}
	}
	return nil
}
