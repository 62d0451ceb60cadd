package flow

import "fmt"

// Player-facing text. Keep lines short; they share the status bar.

// ErrorLine is shown for the whole mismatch cooldown.
const ErrorLine = "Niestety nie udało się, spróbuj ponownie"

func lineStart() string {
	return "Zaczynamy! Wybierz poziom trudności."
}

func lineSessionStarted(recipe string, steps int) string {
	return fmt.Sprintf("%s: zapamiętaj %d składników.", recipe, steps)
}

func lineInputOpen() string {
	return "Twoja kolej: wskaż składniki w tej samej kolejności."
}

func lineTapAccepted(label string, done, total int) string {
	return fmt.Sprintf("%s (%d/%d)", label, done, total)
}

func lineReplay() string {
	return "Patrz uważnie, pokazuję jeszcze raz."
}

func lineSuccess(recipe string, mistakes int) string {
	if mistakes == 0 {
		return fmt.Sprintf("Brawo! %s gotowy bez ani jednej pomyłki.", recipe)
	}
	return fmt.Sprintf("Brawo! %s gotowy (pomyłki: %d).", recipe, mistakes)
}

func linePlayAgain() string {
	return "Jeszcze raz! Wybierz poziom trudności."
}
