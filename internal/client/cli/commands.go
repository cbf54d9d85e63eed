package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/racfadmin/internal/common"
	"github.com/dmitrijs2005/racfadmin/internal/models"
	"github.com/dmitrijs2005/racfadmin/internal/racf"
)

var errExportDisabled = errors.New("export is not configured (set s3_bucket)")

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.prompts)
}

func (a *App) secret(prompt string) (string, error) {
	if a.interactive {
		return GetSecret(prompt, a.prompts)
	}
	return a.ask(prompt)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// resolve finds a record by id or by userid.
func (a *App) resolve(ctx context.Context, ref string) (*models.UserRecord, error) {
	list, err := a.users.List(ctx)
	if err != nil {
		return nil, err
	}
	userID := models.NormalizeUserID(ref)
	for i := range list {
		if list[i].ID == ref || list[i].UserID == userID {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (a *App) List(ctx context.Context) error {
	list, err := a.users.List(ctx)
	if err != nil {
		return err
	}
	a.println(renderUsers(list))
	return nil
}

func (a *App) Add(ctx context.Context) error {
	var p models.CreateUserPayload
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"User ID (1-8 characters)", &p.UserID},
		{"Name", &p.Name},
		{"Default group", &p.DefaultGroup},
		{"Owner (blank for " + common.DefaultOwner + ")", &p.Owner},
	}
	for _, f := range fields {
		v, err := a.ask(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	auth, err := a.ask("Auth option: 1 password, 2 phrase, 3 both, 4 protected (blank for 1)")
	if err != nil {
		return err
	}
	p.AuthOption = models.AuthOption(auth)

	if p.Expiration, err = a.ask("Expiration YYYY-MM-DD (blank for none)"); err != nil {
		return err
	}

	var cred racf.Credentials
	switch p.AuthOption {
	case "", models.AuthPassword, models.AuthPasswordPhrase:
		if cred.Password, err = a.secret("Initial password (blank to set at first logon)"); err != nil {
			return err
		}
	}
	if p.AuthOption == models.AuthPhrase || p.AuthOption == models.AuthPasswordPhrase {
		if cred.Phrase, err = a.secret("Password phrase"); err != nil {
			return err
		}
	}

	rec, err := a.users.Create(ctx, p)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Created %s (id %s)", rec.UserID, rec.ID))
	a.println(renderCommand(racf.AddUser(rec, cred)))
	return nil
}

func parseStatus(s string) models.Status {
	switch strings.ToLower(s) {
	case "active":
		return models.StatusActive
	case "inactive":
		return models.StatusInactive
	}
	return models.Status(s)
}

func (a *App) Edit(ctx context.Context, ref string) error {
	rec, err := a.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if rec == nil {
		return &common.NotFoundError{ID: ref}
	}

	var patch models.UpdateUserPayload
	askField := func(label, current string) (string, bool, error) {
		v, err := a.ask(fmt.Sprintf("%s [%s]", label, current))
		return v, v != "", err
	}

	if v, ok, err := askField("User ID", rec.UserID); err != nil {
		return err
	} else if ok {
		patch.UserID = models.Some(v)
	}
	if v, ok, err := askField("Name", rec.Name); err != nil {
		return err
	} else if ok {
		patch.Name = models.Some(v)
	}
	if v, ok, err := askField("Default group", rec.DefaultGroup); err != nil {
		return err
	} else if ok {
		patch.DefaultGroup = models.Some(v)
	}
	if v, ok, err := askField("Owner", rec.Owner); err != nil {
		return err
	} else if ok {
		patch.Owner = models.Some(v)
	}
	if v, ok, err := askField("Status (Active/Inactive)", string(rec.Status)); err != nil {
		return err
	} else if ok {
		patch.Status = models.Some(parseStatus(v))
	}
	if v, ok, err := askField("Auth option (1-4)", string(rec.AuthOption)); err != nil {
		return err
	} else if ok {
		patch.AuthOption = models.Some(models.AuthOption(v))
	}
	if v, ok, err := askField("Expiration YYYY-MM-DD, - to clear", rec.Expiration); err != nil {
		return err
	} else if v == "-" {
		patch.Expiration = models.Null[string]()
	} else if ok {
		patch.Expiration = models.Some(v)
	}

	if patch.Empty() {
		a.println(mutedStyle.Render("Nothing to change."))
		return nil
	}

	updated, err := a.users.Update(ctx, rec.ID, patch)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Updated %s", updated.UserID))
	if cmd := racf.AltUser(*rec, updated); cmd != "" {
		a.println(renderCommand(cmd))
	}
	return nil
}

func (a *App) Delete(ctx context.Context, refs []string) error {
	ids := make([]string, 0, len(refs))
	var cmds []string
	for _, ref := range refs {
		rec, err := a.resolve(ctx, ref)
		if err != nil {
			return err
		}
		if rec == nil {
			ids = append(ids, ref)
			continue
		}
		ids = append(ids, rec.ID)
		cmds = append(cmds, racf.DelUser(rec.UserID))
	}

	err := a.users.DeleteMany(ctx, ids)
	for _, c := range cmds {
		a.println(renderCommand(c))
	}
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Deleted %d record(s).", len(ids)))
	return nil
}

func (a *App) Preview(ctx context.Context, ref string) error {
	rec, err := a.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if rec == nil {
		return &common.NotFoundError{ID: ref}
	}
	a.println(renderCommand(racf.AddUser(*rec, racf.Credentials{})))
	return nil
}

func (a *App) Status(ctx context.Context) error {
	st, err := a.users.Status(ctx)
	mode := ModeOffline
	if st.Online {
		mode = ModeOnline
	}
	a.setMode(ctx, mode)
	a.println("Mode:", renderMode(mode))
	if err != nil {
		return err
	}

	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	a.println(fmt.Sprintf("Local store: seeded %s, empty %s", yesNo(st.Seed.HasEverSeeded), yesNo(st.Seed.StoreEmpty)))
	return nil
}

func (a *App) Export(ctx context.Context) error {
	if a.exporter == nil {
		return errExportDisabled
	}
	key, n, err := a.exporter.Export(ctx)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Exported %d user(s) to %s", n, key))
	return nil
}
