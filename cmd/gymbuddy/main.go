package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"alcyxob/gym-buddy/internal/app"
	"alcyxob/gym-buddy/internal/config"
	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/service"
)

var (
	configDir string
	dbPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gymbuddy",
		Short:        "Workout routines, sessions and history from the terminal",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing config.yaml and .env")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides storage.sqlite_path)")

	rootCmd.AddCommand(routinesCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(trainCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openServices loads config and opens the configured store. The caller must
// call the returned close function.
func openServices(ctx context.Context) (*app.Services, func(), error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.Storage.Driver = config.DriverSQLite
		cfg.Storage.SQLitePath = dbPath
	}

	store, closeStore, err := app.OpenKVStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	svcs, err := app.NewServices(ctx, store)
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	return svcs, func() { _ = closeStore() }, nil
}

func routinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routines",
		Short: "Manage workout routines",
	}
	cmd.AddCommand(routinesListCmd())
	cmd.AddCommand(routinesCreateCmd())
	cmd.AddCommand(routinesDeleteCmd())
	return cmd
}

func routinesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved routines",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, closeFn, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			routines, err := svcs.Routines.ListRoutines(cmd.Context())
			if err != nil {
				return err
			}
			if len(routines) == 0 {
				fmt.Println("No routines yet. Create one with: gymbuddy routines create --name ... --exercise name:sets:reps")
				return nil
			}
			for _, r := range routines {
				printRoutine(r)
			}
			return nil
		},
	}
}

func routinesCreateCmd() *cobra.Command {
	var name, description string
	var exercises []string

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a routine",
		Example: `  gymbuddy routines create --name "Leg Day" --exercise Squat:3:5 --exercise "Lunge:3:8-12"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &service.CreateRoutineRequest{Name: name, Description: description}
			for _, spec := range exercises {
				req.Exercises = append(req.Exercises, parseExerciseFlag(spec))
			}

			svcs, closeFn, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			routine, err := svcs.Routines.CreateRoutine(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Created routine: %s\n", shortID(routine.ID))
			printRoutine(*routine)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "routine name")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	cmd.Flags().StringArrayVar(&exercises, "exercise", nil, "exercise as name:sets:reps (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func routinesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a routine (its history is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete without --yes")
			}
			svcs, closeFn, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			routine, err := resolveRoutine(cmd.Context(), svcs.Routines, args[0])
			if err != nil {
				return err
			}
			if err := svcs.Routines.DeleteRoutine(cmd.Context(), routine.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted routine %s (%s)\n", routine.Name, shortID(routine.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show finished workouts, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, closeFn, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			items, err := svcs.History.ListHistory(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No workouts logged yet.")
				return nil
			}
			for _, item := range items {
				printHistoryItem(item)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "max entries to show (0 = all)")
	return cmd
}

func trainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "train [routine-id]",
		Short: "Run a workout session interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, closeFn, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			routine, err := resolveRoutine(cmd.Context(), svcs.Routines, args[0])
			if err != nil {
				return err
			}
			return runTrain(cmd.Context(), os.Stdin, os.Stdout, svcs.Workouts, routine.ID)
		},
	}
}

// resolveRoutine accepts a full id or a unique prefix of one.
func resolveRoutine(ctx context.Context, routines service.RoutineService, idOrPrefix string) (*domain.Routine, error) {
	if r, err := routines.GetRoutine(ctx, idOrPrefix); err == nil {
		return r, nil
	}
	list, err := routines.ListRoutines(ctx)
	if err != nil {
		return nil, err
	}
	var match *domain.Routine
	for i := range list {
		if strings.HasPrefix(list[i].ID, idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("routine id %q is ambiguous", idOrPrefix)
			}
			match = &list[i]
		}
	}
	if match == nil {
		return nil, service.ErrRoutineNotFound
	}
	return match, nil
}

// parseExerciseFlag splits "name:sets:reps". Missing parts stay empty and a
// name may itself contain colons.
func parseExerciseFlag(spec string) service.ExerciseInput {
	parts := strings.Split(spec, ":")
	switch len(parts) {
	case 1:
		return service.ExerciseInput{Name: parts[0]}
	case 2:
		return service.ExerciseInput{Name: parts[0], Sets: parts[1]}
	default:
		n := len(parts)
		return service.ExerciseInput{
			Name: strings.Join(parts[:n-2], ":"),
			Sets: parts[n-2],
			Reps: parts[n-1],
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printRoutine(r domain.Routine) {
	fmt.Printf("%s  %s\n", shortID(r.ID), r.Name)
	if r.Description != "" {
		fmt.Printf("          %s\n", r.Description)
	}
	for i, ex := range r.Exercises {
		fmt.Printf("          %d. %s  %s sets x %s reps\n", i+1, ex.Name, ex.Sets, ex.Reps)
	}
}

func printHistoryItem(item service.HistoryItem) {
	e := item.Entry
	fmt.Printf("%s  %s  %s  %s\n",
		e.Date.Local().Format("Mon Jan 2 2006 15:04"),
		e.RoutineName,
		(time.Duration(e.DurationMs) * time.Millisecond).Round(time.Minute),
		strings.Repeat("*", e.Rating))
	if e.Comment != "" {
		fmt.Printf("    %q\n", e.Comment)
	}
	for _, s := range item.Summaries {
		fmt.Printf("    %s: %d sets, best %skg\n", s.Name, s.SetCount, s.BestWeight)
	}
}
