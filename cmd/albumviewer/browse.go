package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"albumviewer/internal/flow"
	cl "albumviewer/pkg/catelog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the screens in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(os.Stderr)
		return browse(cmd.Context(), newApp(logger), os.Stdin, cmd.OutOrStdout())
	},
}

const browseHelp = `commands:
  u <user>          expand or collapse a user
  d <user> <album>  delete an album (asks for confirmation)
  y | n             confirm or cancel the pending deletion
  o <user> <album>  open the photos of an album
  a                 toggle between the album's photos and all photos
  p <photo>         press a photo
  b                 go back
  h                 show this help
  q                 quit`

// browser reads commands line by line and renders the current screen after
// each one.
type browser struct {
	app     *flow.App
	out     io.Writer
	pending *[2]int
}

func browse(ctx context.Context, app *flow.App, in io.Reader, out io.Writer) error {
	b := &browser{app: app, out: out}
	if err := app.Users.Mount(ctx); err != nil {
		fmt.Fprintln(out, flow.MsgFetchUsersError)
		return err
	}
	b.render()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "q" {
			return nil
		}
		if err := b.exec(ctx, fields); err != nil {
			fmt.Fprintf(out, "! %s\n", err.Error())
			continue
		}
		b.render()
	}
	return sc.Err()
}

func (b *browser) exec(ctx context.Context, fields []string) error {
	ids, err := atois(fields[1:])
	if err != nil {
		return err
	}
	arity := map[string]int{"u": 1, "d": 2, "o": 2, "p": 1}
	if n := arity[fields[0]]; len(ids) != n {
		return errors.Errorf("%s expects %d arguments, see h", fields[0], n)
	}

	users := b.app.Users
	switch fields[0] {
	case "u":
		// The fetch error is part of the rendered screen.
		err := users.SelectUser(ctx, ids[0])
		if errors.Is(err, cl.ErrNotFound) {
			return err
		}
		return nil
	case "d":
		if err := users.RequestDelete(ids[0], ids[1]); err != nil {
			return err
		}
		b.pending = &[2]int{ids[0], ids[1]}
		return nil
	case "y", "n":
		if b.pending == nil {
			return errors.New("no deletion pending")
		}
		key := *b.pending
		b.pending = nil
		if fields[0] == "n" {
			users.CancelDelete(key[0], key[1])
			return nil
		}
		if err := users.ConfirmDelete(key[0], key[1]); err != nil {
			return err
		}
		return users.CompleteRemoval(key[0], key[1])
	case "o":
		_, err := b.app.OpenAlbum(ctx, ids[0], ids[1])
		if errors.Is(err, cl.ErrNotFound) {
			return err
		}
		return nil
	case "a":
		screen, err := b.app.Photos()
		if err != nil {
			return err
		}
		_ = screen.ToggleShowAll(ctx)
		return nil
	case "p":
		screen, err := b.app.Photos()
		if err != nil {
			return err
		}
		screen.PressPhoto(ids[0])
		return nil
	case "b":
		b.app.Back()
		return nil
	case "h":
		fmt.Fprintln(b.out, browseHelp)
		return nil
	}
	return errors.Errorf("unknown command %q, see h", fields[0])
}

func (b *browser) render() {
	if screen, err := b.app.Photos(); err == nil {
		renderPhotos(b.out, screen.View())
		return
	}
	renderUsers(b.out, b.app.Users.View())
}

func atois(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, errors.Errorf("%q is not an id", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
