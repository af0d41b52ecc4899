package errors

import "errors"

// Suggestions provides helpful hints for common errors, shown by the CLI
// error path alongside the message.
var Suggestions = map[error]string{
	ErrHopNotFound:       "Use 'hopstack hop list' to see the current chain.",
	ErrServiceRequired:   "Specify a service name, e.g. 'hopstack hop add dns-filter'.",
	ErrChainEmpty:        "Use 'hopstack hop add <service>' to add the first hop.",
	ErrIndexOutOfRange:   "Use 'hopstack history' to see valid positions.",
	ErrNothingToUndo:     "Nothing has been changed yet in this session.",
	ErrNothingToRedo:     "Redo is only available right after an undo.",
	ErrInvalidTimestamp:  "Try formats like '2 hours ago', 'yesterday at 3pm', or '9am'.",
	ErrDeviceUnreachable: "Check HOPSTACK_DEVICE_URL and that the device is online.",
}

// GetSuggestion returns a suggestion for an error, if available. An
// explicit UserError suggestion wins over the sentinel table.
func GetSuggestion(err error) string {
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}
	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}
	return ""
}

// FormatError formats an error with optional suggestion.
func FormatError(err error) string {
	msg := err.Error()
	if suggestion := GetSuggestion(err); suggestion != "" {
		msg += "\n" + suggestion
	}
	return msg
}
