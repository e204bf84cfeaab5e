package bot

// Conversation step tags stored in the session state. Absence of a state
// means the user is idle.
const (
	StepAwaitingName    = "awaiting_name"
	StepAwaitingContact = "awaiting_contact"
	StepAwaitingPurpose = "awaiting_purpose"

	// Admin-side step: the primary admin is typing a new admin's user id.
	StepAwaitingAdminID = "awaiting_admin_id"
)
