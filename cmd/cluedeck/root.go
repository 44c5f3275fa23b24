package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cluedeck",
	Short: "cluedeck - flashcard review for trivia clue sets",
	Long:  "cluedeck imports CSV clue sets as flip-card decks, tracks review flags and categories, and keeps a scored library of every deck.",
}

func init() {
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newReviewCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newMCPCmd())
}
