package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/photojournal/internal/journal/export"
	"github.com/dmitrijs2005/photojournal/internal/journal/models"
)

func (a *App) Share(ctx context.Context, arg string) error {
	return a.exportOne(ctx, arg, export.ModeShare)
}

func (a *App) Save(ctx context.Context, arg string) error {
	return a.exportOne(ctx, arg, export.ModeSave)
}

func (a *App) exportOne(ctx context.Context, arg string, mode export.Mode) error {
	e, err := a.target(ctx, arg, fmt.Sprintf("Enter entry number or id to %s", mode))
	if err != nil {
		return err
	}
	a.println("Rendering page for", e.DisplayDate(), "...")
	a.export.Export(ctx, e, mode)
	return nil
}

// ExportAll compiles the whole journal, newest first, into one PDF.
func (a *App) ExportAll(ctx context.Context) error {
	a.reload(ctx)
	items := a.snapshot()
	list := make([]models.Entry, 0, len(items))
	for _, it := range items {
		list = append(list, it.Entry)
	}
	a.export.ExportAll(ctx, list)
	return nil
}

func (a *App) Gallery(ctx context.Context) error {
	list, err := a.gallery.List(ctx)
	if err != nil {
		a.println("Error:", err)
		return err
	}
	if len(list) == 0 {
		a.println("The gallery is empty. Use 'save' to add a page.")
		return nil
	}
	for _, asset := range list {
		a.println(fmt.Sprintf("%s  %s  %d KB  %s",
			dimStyle.Render(asset.CreatedAt.Local().Format("2006-01-02 15:04")),
			asset.FileName,
			(asset.SizeBytes+1023)/1024,
			dimStyle.Render(a.gallery.PathOf(asset))))
	}
	return nil
}
