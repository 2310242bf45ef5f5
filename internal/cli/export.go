package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/lockbox/internal/export"
	"github.com/dmitrijs2005/lockbox/internal/filex"
)

// export writes tokens in the requested format to a file chosen by the user.
// The file holds plaintext secrets and is created with mode 0600.
func (a *App) export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("export env|shell [id]...")
	}
	format, err := export.ParseFormat(args[0])
	if err != nil {
		return err
	}

	content, n, err := a.vault.Export(ctx, format, args[1:])
	if err != nil {
		return err
	}
	if n == 0 {
		a.println("No tokens to export.")
		return nil
	}

	path, err := GetSimpleText(a.reader, fmt.Sprintf("Output file [%s]", format.DefaultFileName()), a.out)
	if err != nil {
		return err
	}
	if path == "" {
		path = format.DefaultFileName()
	}

	if _, err := os.Stat(path); err == nil {
		ok, err := Confirm(a.reader, fmt.Sprintf("%s exists. Overwrite?", path), a.out)
		if err != nil {
			return err
		}
		if !ok {
			a.println("Cancelled.")
			return nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := filex.WritePrivate(path, []byte(content)); err != nil {
		return err
	}
	a.log.Info(ctx, "export written", "format", string(format), "count", n, "path", path)
	a.printf("Exported %d token(s) to %s.\n", n, path)
	return nil
}
