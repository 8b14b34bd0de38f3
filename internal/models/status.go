package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// legalTransitions lists the successor statuses the console may offer for
// each current status. Completed and cancelled are terminal. The backend is
// the authority; this table mirrors the operator workflow it enforces.
var legalTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// IsValidStatus reports whether s is a known booking status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the operator workflow allows moving a booking
// from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal successor statuses for the given status.
// Terminal and unknown statuses yield an empty slice.
func NextStatuses(status string) []string {
	return append([]string(nil), legalTransitions[status]...)
}

// IsTerminalStatus reports whether no further transitions are offered.
func IsTerminalStatus(status string) bool {
	return IsValidStatus(status) && len(legalTransitions[status]) == 0
}

// StatusLabel returns the operator-facing name for a status, used in
// confirmation prompts and list views.
func StatusLabel(status string) string {
	switch status {
	case StatusPending:
		return "Pending"
	case StatusConfirmed:
		return "Confirmed"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return status
}
