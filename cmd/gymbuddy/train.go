package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/service"
)

const trainHelp = `commands:
  set <ex#> <set#> <weight> [reps]   record a set (numbers start at 1)
  add <ex#>                          add a set to an exercise
  show                               print the session
  finish <rating 0-5> [comment...]   save the workout
  cancel                             discard the workout
  help`

// runTrain drives one session from line-based input. End of input discards
// the session like cancel.
func runTrain(ctx context.Context, in io.Reader, out io.Writer, workouts service.WorkoutService, routineID string) error {
	session, err := workouts.Start(ctx, routineID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Started %s.\n%s\n", session.Routine.Name, trainHelp)
	printSession(out, session)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		done, err := trainStep(ctx, out, workouts, fields)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if done {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := workouts.Cancel(); err != nil && !errors.Is(err, service.ErrNoActiveSession) {
		return err
	}
	fmt.Fprintln(out, "\nInput closed, workout discarded.")
	return nil
}

// trainStep runs one command; done is true once the session is over.
func trainStep(ctx context.Context, out io.Writer, workouts service.WorkoutService, fields []string) (done bool, err error) {
	session, ok := workouts.Active()
	if !ok {
		return true, nil
	}

	switch fields[0] {
	case "set":
		if len(fields) < 4 {
			return false, errors.New("usage: set <ex#> <set#> <weight> [reps]")
		}
		ex, err := exerciseAt(session, fields[1])
		if err != nil {
			return false, err
		}
		setNo, err := strconv.Atoi(fields[2])
		if err != nil {
			return false, fmt.Errorf("invalid set number %q", fields[2])
		}
		if _, err := workouts.UpdateSet(ex.ID, setNo-1, domain.FieldWeight, fields[3]); err != nil {
			return false, err
		}
		if len(fields) == 4 {
			fmt.Fprintf(out, "%s set %d: %s\n", ex.Name, setNo, fields[3])
			break
		}
		if _, err := workouts.UpdateSet(ex.ID, setNo-1, domain.FieldReps, fields[4]); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "%s set %d: %s x %s\n", ex.Name, setNo, fields[3], fields[4])

	case "add":
		if len(fields) < 2 {
			return false, errors.New("usage: add <ex#>")
		}
		ex, err := exerciseAt(session, fields[1])
		if err != nil {
			return false, err
		}
		next, err := workouts.AddSet(ex.ID)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "%s now has %d sets\n", ex.Name, len(next.Entries[ex.ID]))

	case "show":
		printSession(out, session)

	case "finish":
		if len(fields) < 2 {
			return false, errors.New("usage: finish <rating 0-5> [comment...]")
		}
		rating, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, fmt.Errorf("invalid rating %q", fields[1])
		}
		entry, err := workouts.Finish(ctx, rating, strings.Join(fields[2:], " "))
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "Saved %s (%d min, rating %d).\n", entry.RoutineName, entry.DurationMs/60000, entry.Rating)
		return true, nil

	case "cancel":
		if err := workouts.Cancel(); err != nil {
			return false, err
		}
		fmt.Fprintln(out, "Workout discarded.")
		return true, nil

	case "help":
		fmt.Fprintln(out, trainHelp)

	default:
		return false, fmt.Errorf("unknown command %q (try help)", fields[0])
	}
	return false, nil
}

func exerciseAt(s domain.Session, arg string) (domain.Exercise, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(s.Routine.Exercises) {
		return domain.Exercise{}, fmt.Errorf("no exercise #%s", arg)
	}
	return s.Routine.Exercises[n-1], nil
}

func printSession(out io.Writer, s domain.Session) {
	for i, ex := range s.Routine.Exercises {
		fmt.Fprintf(out, "%d. %s (target %s x %s)\n", i+1, ex.Name, ex.Sets, ex.Reps)
		for j, set := range s.Entries[ex.ID] {
			weight, reps := set.Weight, set.Reps
			if weight == "" {
				weight = "-"
			}
			if reps == "" {
				reps = "-"
			}
			fmt.Fprintf(out, "   set %d: %s kg x %s\n", j+1, weight, reps)
		}
	}
}
