package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/socra/internal/mastery"
	"github.com/abhisek/socra/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show what the tutor has learned about you",
	RunE: func(cmd *cobra.Command, args []string) error {
		id := learnerID(cmd)
		ctx := context.Background()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		p, err := st.Profiles().Load(ctx, id)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if p == nil {
			fmt.Printf("No profile for %q yet. Run `socra` and complete a dialogue first.\n", id)
			return nil
		}

		fmt.Printf("Learner %q, built from %d dialogues\n\n", id, p.DialogueCount)

		fmt.Println("Understanding")
		printAxis("explanation quality", p.Understanding.ExplanationQuality)
		printAxis("elaboration depth", p.Understanding.ElaborationDepth)
		printAxis("abstraction level", p.Understanding.AbstractionLevel)
		fmt.Printf("  %-22s %s\n\n", "expertise", p.Understanding.Expertise)

		fmt.Println("Confidence")
		printAxis("calibration", p.ConfidenceAx.CalibrationAccuracy)
		printAxis("hedging", p.ConfidenceAx.HedgingRate)
		printAxis("certainty", p.ConfidenceAx.CertaintyRate)
		fmt.Printf("  %-22s %s\n\n", "trajectory", p.ConfidenceAx.Trajectory)

		fmt.Println("Metacognition")
		printAxis("self-correction", p.Metacognition.SelfCorrectionRate)
		printAxis("boundary awareness", p.Metacognition.BoundaryAwareness)
		printAxis("reflection", p.Metacognition.ReflectionFrequency)
		fmt.Println()

		fmt.Println("Engagement")
		printAxis("curiosity", p.Engagement.CuriosityScore)
		printAxis("persistence", p.Engagement.PersistenceAfterError)
		fmt.Printf("  %-22s %s reasoning, prefers %s\n", "style", p.Reasoning.Style, p.Reasoning.Processing)

		svc := mastery.NewService(st.Mastery())
		recs, err := svc.All(ctx, id)
		if err != nil {
			return fmt.Errorf("load mastery: %w", err)
		}
		if len(recs) > 0 {
			fmt.Println("\nSkills")
			for _, r := range recs {
				fmt.Printf("  %-24s %.2f %s\n", r.SkillID, r.Score, r.Level())
			}
		}
		return nil
	},
}

func printAxis(label string, v float64) {
	const width = 20
	filled := int(v*width + 0.5)
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	fmt.Printf("  %-22s %s %.2f\n", label, bar, v)
}
