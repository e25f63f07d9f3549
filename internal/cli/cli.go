// Package cli maps health subcommands onto repository operations and prints
// their outcome. Duplicate and not-found conditions are reported on the
// output and are not errors; Run only returns usage and storage failures.
package cli

import (
	"bufio"   // Confirmation prompt
	"context" // Request scoping
	"flag"    // Subcommand flags
	"fmt"     // Output formatting
	"io"      // Input and output streams
	"maps"    // Command listing
	"slices"  // Command listing
	"strings" // Answer normalisation

	"health_tracker/internal/repository" // Repository operations
	"health_tracker/internal/utils"      // JWT utility functions

	"github.com/pkg/errors" // Error wrapping
	"gorm.io/gorm"          // GORM ORM library
)

// ErrUsage marks malformed command lines
var ErrUsage = errors.New("usage")

// App holds what subcommands need
type App struct {
	Store     *repository.Store       // Repository operations
	Migrate   func(db *gorm.DB) error // Creates the tables for init
	JWTSecret string                  // Signs tokens minted by the token command
	In        io.Reader               // Confirmation answers
	Out       io.Writer               // Command output
}

type command struct {
	summary string
	run     func(ctx context.Context, args []string) error
}

func (a *App) commands() map[string]map[string]command {
	return map[string]map[string]command{
		"init": {"": {"Initialize the database.", a.initDB}},
		"user": {
			"create": {"Create a new user.", a.createUser},
			"list":   {"List all users.", a.listUsers},
			"delete": {"Delete a user and all their associated data.", a.deleteUser},
		},
		"entry": {
			"add":  {"Add a new food entry for a user.", a.addEntry},
			"list": {"List food entries, optionally filtered by user and/or date.", a.listEntries},
		},
		"goal": {
			"set":  {"Set the calorie goal of a user.", a.setGoal},
			"show": {"Show the calorie goal of a user.", a.showGoal},
		},
		"plan": {
			"add":  {"Add a meal plan for a week.", a.addPlan},
			"list": {"List the meal plans of a user.", a.listPlans},
		},
		"token": {"": {"Mint an API token for a user.", a.mintToken}},
	}
}

// Run dispatches args, e.g. ["user", "create", "-name", "Alice"]
func (a *App) Run(ctx context.Context, args []string) error {
	groups := a.commands()
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}
	group, ok := groups[args[0]]
	if !ok {
		a.usage()
		return errors.Wrapf(ErrUsage, "unknown command %q", args[0])
	}
	if cmd, ok := group[""]; ok {
		return cmd.run(ctx, args[1:])
	}
	if len(args) < 2 {
		a.groupUsage(args[0], group)
		return errors.Wrapf(ErrUsage, "%s needs a subcommand", args[0])
	}
	cmd, ok := group[args[1]]
	if !ok {
		a.groupUsage(args[0], group)
		return errors.Wrapf(ErrUsage, "unknown command %q", args[0]+" "+args[1])
	}
	return cmd.run(ctx, args[2:])
}

func (a *App) usage() {
	fmt.Fprintln(a.Out, "Health Simplified CLI Application")
	fmt.Fprintln(a.Out, "Commands: init, user, entry, goal, plan, token")
}

func (a *App) groupUsage(name string, group map[string]command) {
	fmt.Fprintf(a.Out, "Usage: health %s <command>\n", name)
	for _, sub := range slices.Sorted(maps.Keys(group)) {
		fmt.Fprintf(a.Out, "  %-8s %s\n", sub, group[sub].summary)
	}
}

// flags builds a FlagSet that reports to the app output instead of exiting
func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Out)
	return fs
}

func parse(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(ErrUsage, err.Error())
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for _, name := range required {
		if !set[name] {
			return errors.Wrapf(ErrUsage, "missing option '--%s'", name)
		}
	}
	return nil
}

// report prints recoverable repository conditions and passes storage
// failures up
func (a *App) report(err error, message string) error {
	if repository.Kind(err) == repository.KindInternal {
		return err
	}
	fmt.Fprintln(a.Out, message)
	return nil
}

func (a *App) initDB(ctx context.Context, args []string) error {
	if err := parse(a.flags("init"), args); err != nil {
		return err
	}
	if err := a.Migrate(a.Store.DB().WithContext(ctx)); err != nil {
		return err
	}
	fmt.Fprintln(a.Out, "Database initialized.")
	return nil
}

func (a *App) createUser(ctx context.Context, args []string) error {
	fs := a.flags("user create")
	name := fs.String("name", "", "Name of the user")
	if err := parse(fs, args, "name"); err != nil {
		return err
	}
	if _, err := a.Store.CreateUser(ctx, *name); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return a.report(err, fmt.Sprintf("User '%s' already exists.", *name))
		}
		return a.report(err, "Error: "+err.Error())
	}
	fmt.Fprintf(a.Out, "User '%s' created.\n", *name)
	return nil
}

func (a *App) listUsers(ctx context.Context, args []string) error {
	if err := parse(a.flags("user list"), args); err != nil {
		return err
	}
	found := false
	for user, err := range a.Store.ListUsers(ctx) {
		if err != nil {
			return err
		}
		found = true
		fmt.Fprintf(a.Out, "ID: %d, Name: %s\n", user.ID, user.Name)
	}
	if !found {
		fmt.Fprintln(a.Out, "No users found.")
	}
	return nil
}

func (a *App) deleteUser(ctx context.Context, args []string) error {
	fs := a.flags("user delete")
	name := fs.String("name", "", "Name of the user to delete.")
	yes := fs.Bool("yes", false, "Confirm the action without prompting.")
	if err := parse(fs, args, "name"); err != nil {
		return err
	}
	if !*yes && !a.confirm("Are you sure you want to delete this user and all their associated data?") {
		fmt.Fprintln(a.Out, "Aborted!")
		return nil
	}
	if err := a.Store.DeleteUser(ctx, *name); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return a.report(err, fmt.Sprintf("Error: User '%s' not found.", *name))
		}
		return errors.Wrapf(err, "An error occurred while deleting user '%s'", *name)
	}
	fmt.Fprintf(a.Out, "User '%s' and all associated data have been deleted.\n", *name)
	return nil
}

func (a *App) confirm(prompt string) bool {
	fmt.Fprintf(a.Out, "%s [y/N]: ", prompt)
	answer, _ := bufio.NewReader(a.In).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (a *App) addEntry(ctx context.Context, args []string) error {
	fs := a.flags("entry add")
	user := fs.String("user", "", "Name of the user logging the entry.")
	food := fs.String("food", "", "Name of the food item.")
	calories := fs.Int("calories", 0, "Number of calories.")
	date := fs.String("date", "", "Date of consumption (YYYY-MM-DD).")
	if err := parse(fs, args, "user", "food", "calories", "date"); err != nil {
		return err
	}
	_, err := a.Store.AddFoodEntry(ctx, *user, *food, *calories, *date)
	switch {
	case err == nil:
		fmt.Fprintf(a.Out, "Food entry '%s' (%d kcal) added for user '%s' on %s.\n", *food, *calories, *user, *date)
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return a.report(err, fmt.Sprintf("Error: User '%s' not found.", *user))
	case errors.Is(err, repository.ErrInvalidDate):
		return a.report(err, "Error: Date format must be YYYY-MM-DD.")
	}
	return a.report(err, "Error: "+err.Error())
}

func (a *App) listEntries(ctx context.Context, args []string) error {
	fs := a.flags("entry list")
	user := fs.String("user", "", "Name of the user to filter entries for.")
	date := fs.String("date", "", "Date to filter entries for (YYYY-MM-DD).")
	if err := parse(fs, args); err != nil {
		return err
	}
	entries, err := a.Store.ListFoodEntries(ctx, repository.EntryFilter{User: *user, Date: *date})
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return a.report(err, fmt.Sprintf("Error: User '%s' not found.", *user))
	case errors.Is(err, repository.ErrInvalidDate):
		return a.report(err, "Error: Date format for filtering must be YYYY-MM-DD.")
	case err != nil:
		return a.report(err, "Error: "+err.Error())
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.Out, "No food entries found matching your criteria.")
		return nil
	}
	fmt.Fprintln(a.Out, "Food Entries:")
	for _, e := range entries {
		fmt.Fprintf(a.Out, "  ID: %d, User: %s, Food: %s, Calories: %d, Date: %s\n",
			e.ID, e.UserName, e.FoodName, e.Calories, e.Date)
	}
	return nil
}

func (a *App) setGoal(ctx context.Context, args []string) error {
	fs := a.flags("goal set")
	user := fs.String("user", "", "Name of the user.")
	daily := fs.Int("daily", 0, "Daily calorie target.")
	weekly := fs.Int("weekly", 0, "Weekly calorie target.")
	if err := parse(fs, args, "user", "daily", "weekly"); err != nil {
		return err
	}
	_, err := a.Store.CreateGoal(ctx, *user, *daily, *weekly)
	switch {
	case err == nil:
		fmt.Fprintf(a.Out, "Goal set for user '%s': %d kcal/day, %d kcal/week.\n", *user, *daily, *weekly)
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return a.report(err, fmt.Sprintf("Error: User '%s' not found.", *user))
	case errors.Is(err, repository.ErrDuplicateGoal):
		return a.report(err, fmt.Sprintf("User '%s' already has a goal.", *user))
	}
	return a.report(err, "Error: "+err.Error())
}

func (a *App) showGoal(ctx context.Context, args []string) error {
	fs := a.flags("goal show")
	user := fs.String("user", "", "Name of the user.")
	if err := parse(fs, args, "user"); err != nil {
		return err
	}
	goal, err := a.Store.GetGoal(ctx, *user)
	switch {
	case err == nil:
		fmt.Fprintf(a.Out, "User: %s, Daily: %d kcal, Weekly: %d kcal\n", *user, goal.DailyCalories, goal.WeeklyCalories)
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return a.report(err, fmt.Sprintf("Error: User '%s' not found.", *user))
	case errors.Is(err, repository.ErrGoalNotFound):
		return a.report(err, fmt.Sprintf("No goal set for user '%s'.", *user))
	}
	return a.report(err, "Error: "+err.Error())
}

func (a *App) addPlan(ctx context.Context, args []string) error {
	fs := a.flags("plan add")
	user := fs.String("user", "", "Name of the user.")
	week := fs.Int("week", 0, "Week number as YYYYWW, e.g. 202523.")
	details := fs.String("details", "", "Free-text plan details.")
	if err := parse(fs, args, "user", "week"); err != nil {
		return err
	}
	_, err := a.Store.AddMealPlan(ctx, *user, *week, *details)
	switch {
	case err == nil:
		fmt.Fprintf(a.Out, "Meal plan for week %d added for user '%s'.\n", *week, *user)
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return a.report(err, fmt.Sprintf("Error: User '%s' not found.", *user))
	case errors.Is(err, repository.ErrInvalidWeek):
		return a.report(err, "Error: Week number must look like YYYYWW.")
	}
	return a.report(err, "Error: "+err.Error())
}

func (a *App) listPlans(ctx context.Context, args []string) error {
	fs := a.flags("plan list")
	user := fs.String("user", "", "Name of the user.")
	if err := parse(fs, args, "user"); err != nil {
		return err
	}
	plans, err := a.Store.ListMealPlans(ctx, *user)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return a.report(err, fmt.Sprintf("Error: User '%s' not found.", *user))
		}
		return err
	}
	if len(plans) == 0 {
		fmt.Fprintln(a.Out, "No meal plans found.")
		return nil
	}
	for _, p := range plans {
		details := "-"
		if p.Details != nil {
			details = *p.Details
		}
		fmt.Fprintf(a.Out, "  ID: %d, Week: %d, Details: %s\n", p.ID, p.WeekNumber, details)
	}
	return nil
}

func (a *App) mintToken(ctx context.Context, args []string) error {
	fs := a.flags("token")
	user := fs.String("user", "", "Name of the user the token acts as.")
	ttl := fs.Duration("ttl", utils.DefaultTokenTTL, "Token lifetime.")
	if err := parse(fs, args, "user"); err != nil {
		return err
	}
	if a.JWTSecret == "" {
		fmt.Fprintln(a.Out, "Error: JWT_SECRET is not set.")
		return nil
	}
	if _, err := a.Store.GetUser(ctx, *user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return a.report(err, fmt.Sprintf("Error: User '%s' not found.", *user))
		}
		return err
	}
	token, err := utils.GenerateJWT(*user, a.JWTSecret, *ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, token)
	return nil
}
