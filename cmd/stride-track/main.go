// Command stride-track is an interactive workout logger. It keeps the
// in-progress session locally (with a resumable draft) and persists finished
// workouts to a stride server.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/stridefit/stride/internal/client"
	"github.com/stridefit/stride/internal/draft"
	"github.com/stridefit/stride/internal/format"
	"github.com/stridefit/stride/internal/session"
	"github.com/stridefit/stride/internal/stats"
	"github.com/stridefit/stride/internal/tracker"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "stride server base URL")
	apiKey := flag.String("api-key", os.Getenv("STRIDE_AUTH_API_KEY"), "API key for the stride server")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("stride-track", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: stride-track -server <URL> [-api-key KEY]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	api := client.New(*serverURL, *apiKey)
	ctx := context.Background()

	me, err := api.Me(ctx)
	if err != nil {
		log.Error("failed to resolve identity", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Logged in as %s\n", me.DisplayName)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	drafts, err := draft.Open(filepath.Join(homeDir, ".stride-track"))
	if err != nil {
		log.Error("failed to open draft database", "error", err)
		os.Exit(1)
	}
	defer drafts.Close()

	app := &app{
		api:    api,
		store:  session.New(),
		drafts: drafts,
		userID: me.ID,
		out:    os.Stdout,
	}
	app.picker = tracker.NewPicker(api, app.store)
	app.completer = tracker.NewCompleter(api, app.store)
	app.history = tracker.NewHistory(api, me.ID)

	app.resumeDraft()
	app.run(ctx, bufio.NewScanner(os.Stdin))
}

type app struct {
	api       *client.Client
	store     *session.Store
	drafts    *draft.DB
	picker    *tracker.Picker
	completer *tracker.Completer
	history   *tracker.History
	userID    string
	out       *os.File
}

// resumeDraft offers to restore an interrupted session.
func (a *app) resumeDraft() {
	snap, err := a.drafts.Load(a.userID)
	if errors.Is(err, draft.ErrNoDraft) {
		return
	}
	if err != nil {
		fmt.Fprintf(a.out, "draft load failed: %v\n", err)
		return
	}
	a.store.Restore(snap)
	fmt.Fprintf(a.out, "Resumed draft with %d exercise(s).\n", len(snap.Exercises))
}

func (a *app) run(ctx context.Context, in *bufio.Scanner) {
	fmt.Fprintln(a.out, `Type "help" for commands.`)
	for {
		fmt.Fprint(a.out, "> ")
		if !in.Scan() {
			return
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			a.printHelp()
		case "find":
			a.cmdFind(ctx, strings.Join(args, " "))
		case "add":
			a.cmdAdd(ctx, strings.Join(args, " "))
		case "set":
			a.cmdSet(args)
		case "done":
			a.cmdDone(args)
		case "drop":
			a.cmdDrop(args)
		case "unit":
			a.cmdUnit(args)
		case "status":
			a.cmdStatus()
		case "guide":
			a.cmdGuide(ctx, strings.Join(args, " "))
		case "history":
			a.cmdHistory(ctx)
		case "stats":
			a.cmdStats(ctx)
		case "delete":
			a.cmdDelete(ctx, args)
		case "finish":
			a.cmdFinish(ctx)
		case "cancel":
			a.store.Reset()
			a.clearDraft()
			fmt.Fprintln(a.out, "Session discarded.")
		case "quit", "exit":
			a.saveDraft()
			return
		default:
			fmt.Fprintf(a.out, "unknown command %q (try \"help\")\n", cmd)
		}
	}
}

func (a *app) printHelp() {
	fmt.Fprint(a.out, `Commands:
  find [query]        search the exercise catalog
  add <name>          add an exercise to the session
  set <ex#>           add a set to exercise number <ex#>
  set <ex#> <set#> reps|weight <value>
                      fill in a set field
  done <ex#> <set#>   toggle a set's completed flag
  drop <ex#> [set#]   remove a set, or a whole exercise
  unit kg|lbs         change the unit for new sets
  status              show the current session
  guide <name>        AI coaching guidance for an exercise
  history             list saved workouts
  stats               show training totals
  delete <workout#>   delete a saved workout
  finish              save the session
  cancel              discard the session
  quit                save a draft and exit
`)
}

func (a *app) cmdFind(ctx context.Context, query string) {
	if _, err := a.picker.Open(ctx); err != nil {
		fmt.Fprintf(a.out, "catalog fetch failed: %v\n", err)
		return
	}
	matches := a.picker.Filter(query)
	if len(matches) == 0 {
		fmt.Fprintln(a.out, "No matching exercises.")
		return
	}
	for _, ex := range matches {
		fmt.Fprintf(a.out, "  %-24s %s\n", ex.Name, ex.Difficulty)
	}
}

func (a *app) cmdAdd(ctx context.Context, name string) {
	if name == "" {
		fmt.Fprintln(a.out, "usage: add <exercise name>")
		return
	}
	if _, err := a.picker.Open(ctx); err != nil {
		fmt.Fprintf(a.out, "catalog fetch failed: %v\n", err)
		return
	}
	matches := a.picker.Filter(name)
	if len(matches) == 0 {
		fmt.Fprintf(a.out, "no exercise matching %q\n", name)
		return
	}
	if len(matches) > 1 {
		fmt.Fprintf(a.out, "ambiguous, matches:")
		for _, ex := range matches {
			fmt.Fprintf(a.out, " %q", ex.Name)
		}
		fmt.Fprintln(a.out)
		return
	}

	a.store.StartTimer(time.Now())
	a.picker.Select(matches[0])
	a.saveDraft()
	fmt.Fprintf(a.out, "Added %s.\n", matches[0].Name)
}

// exerciseByIndex resolves a 1-based exercise number from the session.
func (a *app) exerciseByIndex(arg string) (session.Exercise, bool) {
	snap := a.store.Snapshot()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(snap.Exercises) {
		fmt.Fprintf(a.out, "no exercise #%s (see \"status\")\n", arg)
		return session.Exercise{}, false
	}
	return snap.Exercises[n-1], true
}

func setByIndex(ex session.Exercise, arg string) (session.Set, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(ex.Sets) {
		return session.Set{}, false
	}
	return ex.Sets[n-1], true
}

func (a *app) cmdSet(args []string) {
	switch len(args) {
	case 1:
		ex, ok := a.exerciseByIndex(args[0])
		if !ok {
			return
		}
		a.store.AddSet(ex.ID)
		a.saveDraft()
		fmt.Fprintf(a.out, "Added set %d to %s.\n", len(ex.Sets)+1, ex.Name)
	case 4:
		ex, ok := a.exerciseByIndex(args[0])
		if !ok {
			return
		}
		set, ok := setByIndex(ex, args[1])
		if !ok {
			fmt.Fprintf(a.out, "no set #%s on %s\n", args[1], ex.Name)
			return
		}
		field := args[2]
		if field != session.FieldReps && field != session.FieldWeight {
			fmt.Fprintln(a.out, "field must be reps or weight")
			return
		}
		a.store.UpdateSet(ex.ID, set.ID, field, args[3])
		a.saveDraft()
	default:
		fmt.Fprintln(a.out, "usage: set <ex#>  |  set <ex#> <set#> reps|weight <value>")
	}
}

func (a *app) cmdDone(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "usage: done <ex#> <set#>")
		return
	}
	ex, ok := a.exerciseByIndex(args[0])
	if !ok {
		return
	}
	set, ok := setByIndex(ex, args[1])
	if !ok {
		fmt.Fprintf(a.out, "no set #%s on %s\n", args[1], ex.Name)
		return
	}
	a.store.ToggleSetCompletion(ex.ID, set.ID)
	a.saveDraft()
}

func (a *app) cmdDrop(args []string) {
	switch len(args) {
	case 1:
		ex, ok := a.exerciseByIndex(args[0])
		if !ok {
			return
		}
		a.store.RemoveExercise(ex.ID)
		a.saveDraft()
		fmt.Fprintf(a.out, "Removed %s.\n", ex.Name)
	case 2:
		ex, ok := a.exerciseByIndex(args[0])
		if !ok {
			return
		}
		set, ok := setByIndex(ex, args[1])
		if !ok {
			fmt.Fprintf(a.out, "no set #%s on %s\n", args[1], ex.Name)
			return
		}
		a.store.RemoveSet(ex.ID, set.ID)
		a.saveDraft()
	default:
		fmt.Fprintln(a.out, "usage: drop <ex#> [set#]")
	}
}

func (a *app) cmdUnit(args []string) {
	if len(args) != 1 || (args[0] != "kg" && args[0] != "lbs") {
		fmt.Fprintln(a.out, "usage: unit kg|lbs")
		return
	}
	a.store.SetWeightUnit(session.WeightUnit(args[0]))
	a.saveDraft()
}

func (a *app) cmdStatus() {
	snap := a.store.Snapshot()
	if len(snap.Exercises) == 0 {
		fmt.Fprintln(a.out, "No active session.")
		return
	}
	fmt.Fprintf(a.out, "Session: %s elapsed, unit %s\n",
		format.Duration(a.store.Elapsed(time.Now())), snap.Unit)
	for i, ex := range snap.Exercises {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, ex.Name)
		for j, set := range ex.Sets {
			mark := " "
			if set.Completed {
				mark = "x"
			}
			fmt.Fprintf(a.out, "   [%s] set %d: %s reps @ %s %s\n",
				mark, j+1, orDash(set.Reps), orDash(set.Weight), set.Unit)
		}
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func (a *app) cmdGuide(ctx context.Context, name string) {
	if name == "" {
		fmt.Fprintln(a.out, "usage: guide <exercise name>")
		return
	}
	text, err := a.api.Guidance(ctx, name)
	if err != nil {
		fmt.Fprintf(a.out, "guidance failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, text)
}

func (a *app) cmdHistory(ctx context.Context) {
	workouts, err := a.history.List(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "history fetch failed: %v\n", err)
		return
	}
	if len(workouts) == 0 {
		fmt.Fprintln(a.out, "No saved workouts.")
		return
	}
	now := time.Now()
	for i, w := range workouts {
		fmt.Fprintf(a.out, "%d. %s  %s  %d exercises, %d sets\n",
			i+1, format.RelativeDate(w.Date, now), format.WorkoutDuration(w.Duration),
			len(w.Exercises), stats.TotalSets(w))
	}
}

func (a *app) cmdStats(ctx context.Context) {
	s, err := a.history.Stats(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "stats fetch failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Workouts: %d\n", s.TotalWorkouts)
	fmt.Fprintf(a.out, "Total time: %s\n", format.Duration(int(s.TotalDuration)))
	fmt.Fprintf(a.out, "Average: %s\n", format.Duration(int(s.AverageDuration)))
}

func (a *app) cmdDelete(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: delete <workout#>")
		return
	}
	workouts, err := a.history.List(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "history fetch failed: %v\n", err)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(workouts) {
		fmt.Fprintf(a.out, "no workout #%s (see \"history\")\n", args[0])
		return
	}
	if err := a.history.Delete(ctx, workouts[n-1].ID); err != nil {
		fmt.Fprintf(a.out, "delete failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Workout deleted.")
}

func (a *app) cmdFinish(ctx context.Context) {
	workoutID, err := a.completer.Complete(ctx, a.userID, time.Now())
	switch {
	case errors.Is(err, tracker.ErrNothingToSave):
		fmt.Fprintln(a.out, "Nothing to save: no completed sets with reps and weight.")
	case errors.Is(err, tracker.ErrSaveInFlight):
		fmt.Fprintln(a.out, "A save is already in progress.")
	case err != nil:
		fmt.Fprintf(a.out, "save failed, session kept: %v\n", err)
	default:
		a.clearDraft()
		fmt.Fprintf(a.out, "Workout saved (%s).\n", workoutID)
	}
}

func (a *app) saveDraft() {
	if err := a.drafts.Save(a.userID, a.store.Snapshot()); err != nil {
		fmt.Fprintf(a.out, "draft save failed: %v\n", err)
	}
}

func (a *app) clearDraft() {
	if err := a.drafts.Clear(a.userID); err != nil {
		fmt.Fprintf(a.out, "draft clear failed: %v\n", err)
	}
}
