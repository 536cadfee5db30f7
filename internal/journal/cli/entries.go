package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/dmitrijs2005/photojournal/internal/journal/models"
	"github.com/dmitrijs2005/photojournal/internal/journal/services"
)

// removeMarker clears a field in the edit flow.
const removeMarker = "-"

var errNoTarget = errors.New("no entry selected")

func (a *App) List(ctx context.Context) error {
	a.reload(ctx)
	items := a.snapshot()
	if len(items) == 0 {
		a.println("No entries yet. Type 'add' to write one.")
		return nil
	}
	for i, it := range items {
		a.println(renderCard(i+1, it.Entry, a.width, false))
	}
	return nil
}

func (a *App) Show(ctx context.Context, arg string) error {
	e, err := a.target(ctx, arg, "Enter entry number or id to show")
	if err != nil {
		return err
	}
	a.println(renderCard(0, e, a.width, true))
	return nil
}

// Add runs the add flow: date, optional photo, text. An entry with
// neither text nor photo is not saved.
func (a *App) Add(ctx context.Context) error {
	rawDate, err := GetSimpleText(a.reader, "Date (YYYY-MM-DD or 2 January 2006, empty for today)", a.out)
	if err != nil {
		return err
	}
	date, err := ParsePickedDate(rawDate, a.now())
	if err != nil {
		a.println("Error:", err)
		return err
	}
	a.println("Date:", models.FormatDisplayDate(date))

	image, err := a.pickImage(ctx, "Photo: file path or URL (empty for none)")
	if err != nil {
		return err
	}

	text, err := GetMultiline(a.reader, "Write about your day", a.out)
	if err != nil {
		return err
	}

	e, err := a.journal.Create(ctx, services.Draft{Text: text, Image: image, Date: date})
	switch {
	case errors.Is(err, common.ErrEmptyEntry):
		a.println("Nothing saved: the entry has neither text nor photo.")
		return nil
	case err != nil:
		a.println("Error:", err)
		return err
	}

	a.println("Saved entry for", e.DisplayDate())
	a.reload(ctx)
	return nil
}

// Edit replaces the text and photo of an entry; its id and date stay.
func (a *App) Edit(ctx context.Context, arg string) error {
	e, err := a.target(ctx, arg, "Enter entry number or id to edit")
	if err != nil {
		return err
	}
	a.println(renderCard(0, e, a.width, true))

	image := e.Image
	pick := !e.HasImage()
	if !pick {
		answer, err := GetSimpleText(a.reader, "Photo: '-' removes it, empty keeps it", a.out)
		if err != nil {
			return err
		}
		// a removed photo may be replaced right away
		pick = answer == removeMarker
	}
	if pick {
		image, err = a.pickImage(ctx, "Photo: file path or URL (empty for none)")
		if err != nil {
			return err
		}
	}

	text := e.Text
	answer, err := GetMultiline(a.reader, "New text: '-' clears it, empty keeps it", a.out)
	if err != nil {
		return err
	}
	switch answer {
	case "":
	case removeMarker:
		text = ""
	default:
		text = answer
	}

	_, err = a.journal.Update(ctx, e.ID, text, image)
	switch {
	case errors.Is(err, common.ErrEmptyEntry):
		a.println("Nothing saved: the entry would have neither text nor photo.")
		return nil
	case err != nil:
		a.println("Error:", err)
		return err
	}

	a.println("Entry updated.")
	a.reload(ctx)
	return nil
}

func (a *App) Delete(ctx context.Context, arg string) error {
	e, err := a.target(ctx, arg, "Enter entry number or id to delete")
	if err != nil {
		return err
	}
	ok, err := AskYesNo(a.reader, fmt.Sprintf("Delete the entry of %s?", e.DisplayDate()), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.journal.Delete(ctx, e.ID); err != nil {
		a.println("Error:", err)
		return err
	}
	a.println("Entry deleted.")
	a.reload(ctx)
	return nil
}

// pickImage asks for a photo source. Empty input means no photo; a
// failed pick is reported and treated the same way.
func (a *App) pickImage(ctx context.Context, prompt string) (string, error) {
	src, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if src == "" {
		return "", nil
	}
	uri, err := a.picker.Pick(ctx, src)
	switch {
	case errors.Is(err, common.ErrCanceled):
		a.Alert(ctx, "No image selected", "The entry is kept without a photo.")
		return "", nil
	case err != nil:
		a.logger.Warn(ctx, "image pick failed", "source", src, "error", err)
		a.Alert(ctx, "No image selected", fmt.Sprintf("Could not load %s: %v", src, err))
		return "", nil
	}
	return uri, nil
}

// target resolves arg (prompting when empty) to an entry. Small numbers
// index the last listing; anything else is an entry id.
func (a *App) target(ctx context.Context, arg, prompt string) (models.Entry, error) {
	if strings.TrimSpace(arg) == "" {
		var err error
		arg, err = GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return models.Entry{}, err
		}
		if arg == "" {
			return models.Entry{}, errNoTarget
		}
	}

	n, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || n <= 0 {
		a.println("Not an entry number or id:", arg)
		return models.Entry{}, fmt.Errorf("%w: %q", errNoTarget, arg)
	}

	items := a.snapshot()
	if n <= int64(len(items)) {
		return items[n-1].Entry, nil
	}

	e, err := a.journal.Get(ctx, n)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.println("No entry", arg)
		} else {
			a.println("Error:", err)
		}
		return models.Entry{}, err
	}
	return e, nil
}
