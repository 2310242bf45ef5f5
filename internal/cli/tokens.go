package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/models"
)

// clearMarker entered at an update prompt clears an optional field.
const clearMarker = "-"

func (a *App) today() models.Date {
	if a.checker != nil {
		return a.checker.Today()
	}
	return models.Date{}
}

func (a *App) list(ctx context.Context) error {
	items, err := a.vault.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("No tokens yet. Use 'add' to store one.")
		return nil
	}

	today := a.today()
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSERVICE\tNAME\tTYPE\tEXPIRES\tSTATUS")
	for _, t := range items {
		expires := "never"
		if t.ExpiryDate != nil {
			expires = t.ExpiryDate.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.ServiceName, t.TokenName, t.TokenType, expires, t.Status(today))
	}
	return w.Flush()
}

func (a *App) add(ctx context.Context) error {
	var (
		in  models.NewToken
		err error
	)

	if in.ServiceName, err = GetSimpleText(a.reader, "Service name", a.out); err != nil {
		return err
	}
	if in.TokenName, err = GetSimpleText(a.reader, "Token name", a.out); err != nil {
		return err
	}

	value, err := getPassword(a.reader, "Token value", a.out)
	if err != nil {
		return err
	}
	in.TokenValue = string(value)
	common.WipeByteArray(value)

	if in.TokenType, err = a.readTokenType(models.TokenTypeAPIKey); err != nil {
		return err
	}
	if in.Description, err = GetSimpleText(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}

	raw, err := GetSimpleText(a.reader, "Expiry date YYYY-MM-DD (empty for none)", a.out)
	if err != nil {
		return err
	}
	if raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			return err
		}
		in.ExpiryDate = &d
	}

	tok, err := a.vault.Add(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Token %s added.\n", tok.ID)
	return nil
}

func (a *App) readTokenType(current models.TokenType) (models.TokenType, error) {
	names := make([]string, 0, len(models.TokenTypes()))
	for _, t := range models.TokenTypes() {
		names = append(names, string(t))
	}

	raw, err := GetSimpleText(a.reader, fmt.Sprintf("Type (%s) [%s]", strings.Join(names, ", "), current), a.out)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return current, nil
	}
	return models.TokenType(strings.ToUpper(raw)), nil
}

func (a *App) show(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return usageError("show <id>...")
	}

	items, err := a.vault.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return common.ErrNotFound
	}

	today := a.today()
	for i, t := range items {
		if i > 0 {
			a.println()
		}
		w := tabwriter.NewWriter(a.out, 0, 0, 1, ' ', 0)
		fmt.Fprintf(w, "ID:\t%s\n", t.ID)
		fmt.Fprintf(w, "Service:\t%s\n", t.ServiceName)
		fmt.Fprintf(w, "Name:\t%s\n", t.TokenName)
		fmt.Fprintf(w, "Type:\t%s\n", t.TokenType)
		fmt.Fprintf(w, "Value:\t%s\n", t.Value)
		if t.Description != "" {
			fmt.Fprintf(w, "Description:\t%s\n", t.Description)
		}
		if t.ExpiryDate != nil {
			fmt.Fprintf(w, "Expires:\t%s (%s)\n", t.ExpiryDate, t.Status(today))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// find returns the listed token with id, without its value.
func (a *App) find(ctx context.Context, id string) (*models.Token, error) {
	items, err := a.vault.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (a *App) update(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("update <id>")
	}

	cur, err := a.find(ctx, args[0])
	if err != nil {
		return err
	}
	a.println("Press Enter to keep the current value, '-' to clear an optional field.")

	var patch models.TokenPatch

	service, err := GetSimpleText(a.reader, fmt.Sprintf("Service name [%s]", cur.ServiceName), a.out)
	if err != nil {
		return err
	}
	if service != "" {
		patch.ServiceName = &service
	}

	name, err := GetSimpleText(a.reader, fmt.Sprintf("Token name [%s]", cur.TokenName), a.out)
	if err != nil {
		return err
	}
	if name != "" {
		patch.TokenName = &name
	}

	value, err := getPassword(a.reader, "Token value [unchanged]", a.out)
	if err != nil {
		return err
	}
	if len(value) > 0 {
		v := string(value)
		patch.TokenValue = &v
	}
	common.WipeByteArray(value)

	typ, err := a.readTokenType(cur.TokenType)
	if err != nil {
		return err
	}
	if typ != cur.TokenType {
		patch.TokenType = &typ
	}

	desc, err := GetSimpleText(a.reader, fmt.Sprintf("Description [%s]", cur.Description), a.out)
	if err != nil {
		return err
	}
	switch desc {
	case "":
	case clearMarker:
		empty := ""
		patch.Description = &empty
	default:
		patch.Description = &desc
	}

	expires := "never"
	if cur.ExpiryDate != nil {
		expires = cur.ExpiryDate.String()
	}
	raw, err := GetSimpleText(a.reader, fmt.Sprintf("Expiry date YYYY-MM-DD [%s]", expires), a.out)
	if err != nil {
		return err
	}
	switch raw {
	case "":
	case clearMarker:
		patch.ClearExpiryDate = true
	default:
		d, err := models.ParseDate(raw)
		if err != nil {
			return err
		}
		patch.ExpiryDate = &d
	}

	if patch.IsEmpty() {
		a.println("Nothing to change.")
		return nil
	}

	tok, err := a.vault.Update(ctx, cur.ID, patch)
	if err != nil {
		return err
	}
	a.printf("Token %s updated.\n", tok.ID)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("delete <id>")
	}

	cur, err := a.find(ctx, args[0])
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %s / %s?", cur.ServiceName, cur.TokenName), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled.")
		return nil
	}

	if err := a.vault.Delete(ctx, cur.ID); err != nil {
		return err
	}
	a.printf("Token %s deleted.\n", cur.ID)
	return nil
}

func (a *App) setNotifications(ctx context.Context, args []string, enabled bool) error {
	if len(args) != 1 {
		if enabled {
			return usageError("unmute <id>")
		}
		return usageError("mute <id>")
	}

	if err := a.vault.SetNotifications(ctx, args[0], enabled); err != nil {
		return err
	}
	if enabled {
		a.printf("Notifications enabled for token %s.\n", args[0])
	} else {
		a.printf("Notifications muted for token %s.\n", args[0])
	}
	return nil
}

func (a *App) history(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("history <id>")
	}

	settings, err := a.vault.Notifications(ctx, args[0])
	if err != nil {
		return err
	}
	records, err := a.vault.History(ctx, args[0])
	if err != nil {
		return err
	}

	if !settings.Enabled {
		a.println("Notifications are muted for this token.")
	}
	if len(records) == 0 {
		a.println("No notifications sent yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SENT\tCATEGORY\tDAYS\tMESSAGE")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.SentAt.Local().Format("2006-01-02 15:04"), r.Category, r.DaysBeforeExpiry, r.Message)
	}
	return w.Flush()
}

func (a *App) check(ctx context.Context) error {
	if a.checker == nil {
		a.println("Expiry checks are not available.")
		return nil
	}
	n, err := a.checker.CheckExpiringTokens(ctx)
	if err != nil {
		return err
	}
	a.printf("Expiry check done, %d notification(s) sent.\n", n)
	return nil
}
