package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/tasks-go/internal/app"
	"github.com/nibzard/tasks-go/internal/colorutil"
	"github.com/nibzard/tasks-go/internal/utils"
)

const categoriesUsage = `usage: tasks categories [command]

Commands:
  ls                       List categories (default)
  add <name> [color]       Add a category (color as #rrggbb)
  rm <category>            Delete a category; its tasks keep the fallback color
  color <category> <color> Change the color of a category
  rename <category> <name> Rename a category
  move <from> <to>         Move a category to a new position (1-based)

Categories may be given by ID, name, or a unique prefix of either.`

// categoriesCommand dispatches the category subcommands.
func (c *cli) categoriesCommand(ctx context.Context, args []string) error {
	sub := "ls"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "ls", "list":
		if len(args) > 0 {
			return fmt.Errorf("unexpected arguments: %v", args)
		}
		return c.withApp(ctx, func(a *app.App) error {
			for i, cat := range a.Categories() {
				fmt.Fprintf(c.out, "%d. %s %s %s\n", i+1, utils.ShortID(cat.ID), colorutil.Badge(cat.Name, cat.Color), cat.Color)
			}
			return nil
		})

	case "add":
		if len(args) < 1 || len(args) > 2 {
			return errors.New("usage: tasks categories add <name> [color]")
		}
		color := ""
		if len(args) == 2 {
			color = args[1]
		}
		return c.withApp(ctx, func(a *app.App) error {
			cat, err := a.AddCategory(ctx, args[0], color)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Added category %s %s\n", utils.ShortID(cat.ID), cat.Name)
			return nil
		})

	case "rm", "delete":
		if len(args) != 1 {
			return errors.New("usage: tasks categories rm <category>")
		}
		return c.withApp(ctx, func(a *app.App) error {
			id, err := a.ResolveCategory(args[0])
			if err != nil {
				return err
			}
			name := a.CategoryName(id)
			if err := a.DeleteCategory(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Deleted category %s\n", name)
			return nil
		})

	case "color":
		if len(args) != 2 {
			return errors.New("usage: tasks categories color <category> <color>")
		}
		return c.withApp(ctx, func(a *app.App) error {
			id, err := a.ResolveCategory(args[0])
			if err != nil {
				return err
			}
			if err := a.SetCategoryColor(ctx, id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Set color of %s to %s\n", a.CategoryName(id), a.CategoryColor(id))
			return nil
		})

	case "rename":
		if len(args) < 2 {
			return errors.New("usage: tasks categories rename <category> <name>")
		}
		return c.withApp(ctx, func(a *app.App) error {
			id, err := a.ResolveCategory(args[0])
			if err != nil {
				return err
			}
			old := a.CategoryName(id)
			if err := a.RenameCategory(ctx, id, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Renamed %s to %s\n", old, a.CategoryName(id))
			return nil
		})

	case "move":
		if len(args) != 2 {
			return errors.New("usage: tasks categories move <from> <to>")
		}
		from, err1 := strconv.Atoi(args[0])
		to, err2 := strconv.Atoi(args[1])
		if err := errors.Join(err1, err2); err != nil {
			return fmt.Errorf("positions must be numbers: %w", err)
		}
		return c.withApp(ctx, func(a *app.App) error {
			if err := a.MoveCategory(ctx, from-1, to-1); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Moved category %d to %d\n", from, to)
			return nil
		})

	case "help", "-h", "--help":
		fmt.Fprintln(c.out, categoriesUsage)
		return nil

	default:
		fmt.Fprintln(c.errOut, categoriesUsage)
		return fmt.Errorf("unknown categories command: %s", sub)
	}
}
