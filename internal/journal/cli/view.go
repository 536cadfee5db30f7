package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dmitrijs2005/photojournal/internal/journal/imagepick"
	"github.com/dmitrijs2005/photojournal/internal/journal/models"
)

const (
	defaultWidth = 80
	minWidth     = 40
	maxWidth     = 100
	previewLen   = 120
	progressBar  = 30
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	dateStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	alertStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	filledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("57"))
)

// terminalWidth is the card width for w, clamped to a readable range.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return defaultWidth
	}
	return min(max(cols, minWidth), maxWidth)
}

// renderCard draws one entry. index is the 1-based position in the
// listing; zero hides it. full shows the whole text instead of a preview.
func renderCard(index int, e models.Entry, width int, full bool) string {
	header := dateStyle.Render(e.DisplayDate())
	if index > 0 {
		header = fmt.Sprintf("%s  %s", dimStyle.Render(fmt.Sprintf("#%d", index)), header)
	}

	lines := []string{header}
	if e.HasImage() {
		lines = append(lines, dimStyle.Render(photoLabel(e)))
	}
	text := e.Text
	if !full {
		text = preview(text, previewLen)
	}
	if text != "" {
		lines = append(lines, text)
	}
	if full {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("id %d", e.ID)))
	}

	return cardStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func photoLabel(e models.Entry) string {
	data, err := models.DecodeImage(e.Image)
	if err != nil {
		return "[photo]"
	}
	w, h, err := imagepick.Size(data)
	if err != nil {
		return "[photo]"
	}
	return fmt.Sprintf("[photo %dx%d]", w, h)
}

// preview collapses text to one line of at most n runes.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func renderAlert(title, message string, width int) string {
	body := titleStyle.Render(title) + "\n" + message
	return alertStyle.MaxWidth(width).Render(body)
}

func renderProgress(percent, width int) string {
	bar := min(progressBar, width/2)
	filled := bar * percent / 100
	return fmt.Sprintf("Exporting %s%s %3d%%",
		filledStyle.Render(strings.Repeat("█", filled)),
		strings.Repeat("░", bar-filled),
		percent)
}
