package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mini-64/internal/storage"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show completed runs",
	RunE:  runRecords,
}

func runRecords(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Records(20)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No completed runs yet. Go get those stars!")
		return nil
	}

	best, err := store.BestTime()
	if err != nil {
		return err
	}

	fmt.Printf("%-20s %6s %6s %8s %8s\n", "DATE", "STARS", "COINS", "BUNNIES", "TIME")
	for _, r := range records {
		fmt.Printf("%-20s %6d %6d %8d %7ds\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Stars, r.Coins, r.BunniesCaught, r.PlaySeconds)
	}
	fmt.Printf("\nBest time: %ds\n", best)
	return nil
}
