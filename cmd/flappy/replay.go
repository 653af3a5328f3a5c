package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Manage recorded sessions",
	Long: `Every session that starts a run is recorded: the seed, the game config
and the input of every tick. A replay re-simulates the session exactly.

Examples:
  flappy replay list
  flappy replay list --plain
  flappy replay run 3
  flappy replay watch 3
  flappy replay delete 3`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse recorded sessions",
	Long: `Open the replay browser. Enter watches the highlighted replay, d deletes it.
With --plain, print the list instead.`,
	Args: cobra.NoArgs,
	RunE: runReplayList,
}

var replayRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Re-simulate a replay and print the outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayRun,
}

var replayWatchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Watch a replay in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayWatch,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a replay",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayDelete,
}

func init() {
	replayListCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the list instead of opening the browser")
	replayListCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of replays to print with --plain")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayRunCmd)
	replayCmd.AddCommand(replayWatchCmd)
	replayCmd.AddCommand(replayDeleteCmd)
}

func parseReplayID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid replay id %q", arg)
	}
	return id, nil
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening replay database: %w", err)
	}
	return store, nil
}

// loadReplay opens the store and fetches one replay.
func loadReplay(arg string) (storage.Replay, error) {
	id, err := parseReplayID(arg)
	if err != nil {
		return storage.Replay{}, err
	}
	store, err := openStore()
	if err != nil {
		return storage.Replay{}, err
	}
	defer store.Close()

	r, err := store.LoadReplay(id)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.Replay{}, fmt.Errorf("no replay with id %d", id)
	}
	return r, err
}

func runReplayList(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if !flagPlain {
		rt := runtimeConfig()
		id, err := tui.RunReplayBrowser(store, rt.ScreenW, rt.ScreenH)
		if err != nil || id == 0 {
			return err
		}
		r, err := store.LoadReplay(id)
		if err != nil {
			return err
		}
		return watch(r)
	}

	replays, err := store.ListReplays(flagLimit)
	if err != nil {
		return err
	}
	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to record one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-6s  %-20s  %-8s  %-8s  %s\n", "ID", "Seed", "Ticks", "Time", "Date")
	fmt.Printf("  %-6s  %-20s  %-8s  %-8s  %s\n", "--", "----", "-----", "----", "----")

	for _, r := range replays {
		fmt.Printf("  %-6d  %-20d  %-8d  %-8s  %s\n",
			r.ID, r.Seed, r.TickCount,
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runReplayRun(_ *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	r, err := loadReplay(args[0])
	if err != nil {
		return err
	}
	cfg, err := config.Parse(r.Config)
	if err != nil {
		return fmt.Errorf("replay %d has an unusable config: %w", r.ID, err)
	}

	inputs := make([]flappy.Input, len(r.Ticks))
	for i, t := range r.Ticks {
		inputs[i] = flappy.Input(t)
	}

	_, res := flappy.Replay(cfg, r.Seed, inputs, logger)

	fmt.Printf("Replay %d (seed %d)\n", r.ID, r.Seed)
	fmt.Println()
	fmt.Printf("  Ticks:    %d\n", len(inputs))
	fmt.Printf("  Duration: %.2fs\n", r.Duration().Seconds())
	fmt.Printf("  State:    %s\n", res.State)
	fmt.Printf("  Score:    %d\n", res.Score.Current)
	fmt.Printf("  Best:     %d\n", res.Score.Best)
	return nil
}

func runReplayWatch(_ *cobra.Command, args []string) error {
	r, err := loadReplay(args[0])
	if err != nil {
		return err
	}
	return watch(r)
}

func watch(r storage.Replay) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()
	return tui.RunPlayback(r, runtimeConfig(), logger)
}

func runReplayDelete(_ *cobra.Command, args []string) error {
	id, err := parseReplayID(args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteReplay(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no replay with id %d", id)
		}
		return err
	}
	fmt.Printf("Deleted replay %d\n", id)
	return nil
}
