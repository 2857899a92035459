package constant

// Command prefixes are matched as literal, case-sensitive string prefixes.
// Anything after a matched prefix (e.g. a meeting title) is carried inside the
// thread message itself; the run instruction comes from the template file.
var MeetingMinutesPrefixes = []string{
	"/meeting_minutes",
	"/회의록",
	"/Meeting",
}

const (
	// CitationRemovalSuffix is appended to every non-command prompt so the
	// assistant omits the file-search citation annotations it would otherwise
	// inline into the reply.
	CitationRemovalSuffix = "  \n Please remove any source citation annotations from the reply."

	// ExportFileName is the download name offered to the browser. The file on
	// disk is per-session; only the download name is shared.
	ExportFileName = "chat_history.txt"
)
