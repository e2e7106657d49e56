package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
	"github.com/dmitrijs2005/itemkeeper/internal/client/services"
)

// List prints the caller's items, optionally filtered by query.
func (a *App) List(ctx context.Context, query string) error {
	if !a.enterDashboard() {
		return nil
	}

	items, err := a.items.List(ctx, a.session.Token(), query)
	if err != nil {
		a.handleAPIError(ctx, err, "Failed to load items")
		return err
	}
	if len(items) == 0 {
		printlnFn("No items")
		return nil
	}
	for _, it := range items {
		printlnFn(formatItem(it))
	}
	return nil
}

// Add prompts for a title and description and creates an item.
func (a *App) Add(ctx context.Context) error {
	if !a.enterDashboard() {
		return nil
	}
	return a.submit(func() error {
		title, err := getSimpleText(a.reader, "Enter title", a.out)
		if err != nil {
			return err
		}
		description, err := getSimpleText(a.reader, "Enter description (optional)", a.out)
		if err != nil {
			return err
		}

		it, err := a.items.Add(ctx, a.session.Token(), title, description)
		if err != nil {
			a.reportItemError(ctx, err, "Failed to add item")
			return err
		}
		printlnFn("Item added:", it.ID)
		return nil
	})
}

// Edit updates an item. Empty answers keep the current value.
func (a *App) Edit(ctx context.Context, id string) error {
	if !a.enterDashboard() {
		return nil
	}
	return a.submit(func() error {
		id, err := a.itemID(id)
		if err != nil {
			return err
		}
		title, err := getSimpleText(a.reader, "New title (empty to keep)", a.out)
		if err != nil {
			return err
		}
		description, err := getSimpleText(a.reader, "New description (empty to keep)", a.out)
		if err != nil {
			return err
		}

		it, err := a.items.Edit(ctx, a.session.Token(), id, title, description)
		if err != nil {
			a.reportItemError(ctx, err, "Failed to update item")
			return err
		}
		printlnFn("Item updated:", formatItem(*it))
		return nil
	})
}

// Delete removes an item after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	if !a.enterDashboard() {
		return nil
	}
	id, err := a.itemID(id)
	if err != nil {
		return err
	}
	ok, err := confirm(a.reader, "Delete item "+id+"?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.items.Delete(ctx, a.session.Token(), id); err != nil {
		a.reportItemError(ctx, err, "Failed to delete item")
		return err
	}
	printlnFn("Item removed")
	return nil
}

var confirm = Confirm

func (a *App) itemID(id string) (string, error) {
	if id != "" {
		return id, nil
	}
	return getSimpleText(a.reader, "Enter item id", a.out)
}

func (a *App) reportItemError(ctx context.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrIDRequired),
		errors.Is(err, services.ErrNothingToUpdate):
		printlnFn(err.Error())
	default:
		a.handleAPIError(ctx, err, fallback)
	}
}

func formatItem(it models.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s", it.ID, it.Title)
	if !it.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "  (%s)", it.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if it.Description != "" {
		fmt.Fprintf(&b, "\n    %s", it.Description)
	}
	return b.String()
}
