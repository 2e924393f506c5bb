package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/socra/internal/app"
	"github.com/abhisek/socra/internal/dialogue"
	"github.com/abhisek/socra/internal/llm"
	"github.com/abhisek/socra/internal/mastery"
	"github.com/abhisek/socra/internal/screens/home"
	"github.com/abhisek/socra/internal/store"
	"github.com/spf13/cobra"
)

var talkCmd = &cobra.Command{
	Use:   "talk",
	Short: "Start a tutoring session (same as running socra with no arguments)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	events := st.Events()
	profiles := st.Profiles()
	masterySvc := mastery.NewService(st.Mastery())

	deps := home.Deps{
		LearnerID:  learnerID(cmd),
		Profiles:   profiles,
		MasterySvc: masterySvc,
		Events:     events,
	}

	opts := dialogue.Options{Tracker: masterySvc}
	provider, err := llm.NewProviderFromEnv(ctx, events)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Running offline; questions come from built-in templates.")
	} else {
		deps.Provider = provider
		opts.Generator = dialogue.NewProviderGenerator(provider)
	}
	deps.Orch = dialogue.New(profiles, opts)

	return app.Run(deps)
}
