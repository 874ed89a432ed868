package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/leadchoose/waitlistd/mailing"
	"github.com/spf13/cobra"
)

var cleanupCommand = cobra.Command{
	Use:   "cleanup",
	Short: "removes expired pending entries",
	Long:  `This runs a one-shot sweep over the pending waitlist and removes every expired entry`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		service := resolveWaitlistService(dataStore, mailing.NewNoOpMailer())
		removed, err := service.CleanupExpired(context.Background())
		if err != nil {
			fmt.Printf("Unable to clean up expired entries: %s\r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Removed %d expired entries\r\n", removed)
	},
}
