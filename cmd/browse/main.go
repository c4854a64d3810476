// browse is a terminal client for the video case library. With -api it
// talks to a deployed endpoint; without one it falls back to an
// in-memory demo store so the tool works immediately.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shimotmr/Pudu-cases/internal/admins"
	"github.com/shimotmr/Pudu-cases/internal/browser"
	"github.com/shimotmr/Pudu-cases/internal/cases"
	"github.com/shimotmr/Pudu-cases/internal/identity"
	"github.com/shimotmr/Pudu-cases/internal/store"
	"github.com/shimotmr/Pudu-cases/internal/validation"
)

const demoAdminEmail = "williamhsiao@aurotek.com"

func main() {
	api := flag.String("api", os.Getenv("API_BASE_URL"), "endpoint URL; empty uses the in-memory demo store")
	as := flag.String("as", "", "email to sign in as (enables admin actions if listed)")
	yes := flag.Bool("yes", false, "answer yes to delete confirmations")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var st store.Store
	if *api != "" {
		st = store.NewRemote(*api)
	} else {
		st = demoStore()
		fmt.Fprintln(os.Stderr, "no -api configured, using in-memory demo store")
	}

	ctl := browser.New(st, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if *as != "" {
		authorized, err := ctl.SignInAs(ctx, identity.Profile{Email: *as, Name: *as})
		if err != nil {
			fatal(err)
		}
		if !authorized {
			fmt.Fprintf(os.Stderr, "access denied: %s is not on the admin list (read only)\n", *as)
		}
	}

	var err error
	switch args[0] {
	case "list":
		err = runList(ctx, ctl, args[1:])
	case "create":
		err = runCreate(ctx, ctl, args[1:])
	case "update":
		err = runUpdate(ctx, ctl, args[1:])
	case "delete":
		err = runDelete(ctx, ctl, args[1:], *yes)
	case "admins":
		err = runAdmins(ctx, st)
	case "add-admin":
		err = runAddAdmin(ctx, ctl, args[1:])
	case "remove-admin":
		err = runRemoveAdmin(ctx, ctl, args[1:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: browse [-api URL] [-as EMAIL] [-yes] <command> [flags]

commands:
  list          show cases (-search, -category, -region, -robot)
  create        add a case (admin)
  update        replace a case by -id (admin)
  delete        remove a case by -id (admin)
  admins        show the admin list
  add-admin     add an email to the admin list (admin)
  remove-admin  remove an email from the admin list (admin)`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "browse:", err)
	os.Exit(1)
}

func demoStore() *store.Memory {
	return store.NewMemory().
		WithDelay(200 * time.Millisecond).
		SeedCases([]cases.VideoCase{
			{
				ID:         "1",
				Category:   "Catering",
				Region:     "USA",
				RobotType:  "BellaBot",
				ClientName: "McDonald's",
				VideoURL:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
				Rating:     4,
				Keywords:   []string{"delivery", "fastfood"},
			},
		}).
		SeedAdmins([]admins.AdminUser{
			{Email: demoAdminEmail, AddedBy: "System", AddedAt: time.Now()},
		})
}

func runList(ctx context.Context, ctl *browser.Controller, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	search := fs.String("search", "", "substring match on client, keywords, subcategory")
	category := fs.String("category", "", "exact category")
	region := fs.String("region", "", "exact region")
	robot := fs.String("robot", "", "exact robot model")
	_ = fs.Parse(args)

	if err := ctl.Refresh(ctx); err != nil {
		return err
	}
	ctl.SetFilters(cases.FilterState{
		Search:    *search,
		Category:  *category,
		Region:    *region,
		RobotType: *robot,
	})

	visible := ctl.Visible()
	fmt.Printf("%d result(s)\n", len(visible))
	for _, c := range visible {
		sub := c.Subcategory
		if sub != "" {
			sub = " / " + sub
		}
		fmt.Printf("%s  %-20s %s%s | %s | %s | %d/5\n", c.ID, c.ClientName, c.Category, sub, c.Region, c.RobotType, c.Rating)
		if len(c.Keywords) > 0 {
			fmt.Printf("      keywords: %s\n", strings.Join(c.Keywords, ", "))
		}
		if c.VideoURL != "" {
			fmt.Printf("      video: %s\n", c.VideoURL)
		}
	}

	opts := ctl.Options()
	fmt.Printf("\nfilters seen: categories=%v regions=%v robots=%v\n", opts.Categories, opts.Regions, opts.RobotTypes)
	return nil
}

func draftFlags(fs *flag.FlagSet) func() cases.Draft {
	client := fs.String("client", "", "client name")
	category := fs.String("category", "", "category")
	subcategory := fs.String("subcategory", "", "subcategory")
	region := fs.String("region", "", "region")
	robot := fs.String("robot", "", "robot model")
	url := fs.String("url", "", "video url")
	rating := fs.Int("rating", 0, "rating 1-5")
	keywords := fs.String("keywords", "", "comma-separated keywords")
	description := fs.String("description", "", "description")

	return func() cases.Draft {
		return cases.Draft{
			Category:    *category,
			Subcategory: *subcategory,
			Region:      *region,
			RobotType:   *robot,
			ClientName:  *client,
			VideoURL:    *url,
			Rating:      *rating,
			Keywords:    cases.SplitKeywords(*keywords),
			Description: *description,
		}
	}
}

func runCreate(ctx context.Context, ctl *browser.Controller, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	draft := draftFlags(fs)
	_ = fs.Parse(args)

	d := draft()
	if err := validation.New().Struct(d); err != nil {
		return fmt.Errorf("invalid case: %w", err)
	}

	ctl.OpenEditor(nil)
	if err := ctl.Save(ctx, d); err != nil {
		return err
	}

	items := ctl.Visible()
	if len(items) > 0 {
		fmt.Printf("created %s (%s)\n", items[0].ClientName, items[0].ID)
	}
	return nil
}

func runUpdate(ctx context.Context, ctl *browser.Controller, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "case id")
	draft := draftFlags(fs)
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("update: -id is required")
	}
	d := draft()
	if err := validation.New().Struct(d); err != nil {
		return fmt.Errorf("invalid case: %w", err)
	}

	if err := ctl.Refresh(ctx); err != nil {
		return err
	}
	var target *cases.VideoCase
	for _, c := range ctl.Visible() {
		if c.ID == *id {
			copied := c
			target = &copied
			break
		}
	}
	if target == nil {
		return fmt.Errorf("update: id %s not found", *id)
	}

	ctl.OpenEditor(target)
	if err := ctl.Save(ctx, d); err != nil {
		return err
	}
	fmt.Printf("updated %s\n", *id)
	return nil
}

func runDelete(ctx context.Context, ctl *browser.Controller, args []string, yes bool) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "case id")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("delete: -id is required")
	}

	if err := ctl.Refresh(ctx); err != nil {
		return err
	}

	confirm := func() bool {
		if yes {
			return true
		}
		fmt.Printf("delete case %s? [y/N] ", *id)
		var answer string
		_, _ = fmt.Scanln(&answer)
		return strings.EqualFold(strings.TrimSpace(answer), "y")
	}

	if err := ctl.Delete(ctx, *id, confirm); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", *id)
	return nil
}

func runAdmins(ctx context.Context, st store.Store) error {
	list, err := st.ListAdmins(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d admin(s)\n", len(list))
	for _, a := range list {
		fmt.Printf("%-32s added by %s at %s\n", a.Email, a.AddedBy, a.AddedAt.Format(time.RFC3339))
	}
	return nil
}

func runAddAdmin(ctx context.Context, ctl *browser.Controller, args []string) error {
	fs := flag.NewFlagSet("add-admin", flag.ExitOnError)
	email := fs.String("email", "", "email to add")
	_ = fs.Parse(args)

	// Malformed emails are rejected locally, before any round-trip.
	if err := validation.New().Var(*email, "required,email"); err != nil {
		return fmt.Errorf("invalid email %q", *email)
	}

	if err := ctl.AddAdmin(ctx, *email); err != nil {
		return err
	}
	fmt.Printf("added %s\n", *email)
	return nil
}

func runRemoveAdmin(ctx context.Context, ctl *browser.Controller, args []string) error {
	fs := flag.NewFlagSet("remove-admin", flag.ExitOnError)
	email := fs.String("email", "", "email to remove")
	_ = fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("remove-admin: -email is required")
	}

	if err := ctl.RemoveAdmin(ctx, *email); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", *email)
	return nil
}
