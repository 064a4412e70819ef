package appvet

// DefaultMaxContextChars bounds the character length of system context plus
// history sent upstream per chat turn.
const DefaultMaxContextChars = 60000

// TrimWindow returns the suffix of history that fits the character budget
// alongside reserved (the system context plus the new message). Turns are
// admitted newest-first; the first turn that would push the running total
// to or past the budget stops the walk, so eviction is earliest-first with
// no gaps. A newest turn too large to fit yields an empty window rather
// than an error. Chronological order is preserved.
func TrimWindow(history []ChatTurn, reserved string, budget int) []ChatTurn {
	total := len(reserved)
	cut := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		if total+len(history[i].Text) >= budget {
			break
		}
		total += len(history[i].Text)
		cut = i
	}
	return history[cut:]
}
