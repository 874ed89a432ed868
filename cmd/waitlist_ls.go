package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/leadchoose/waitlistd/mailing"
	"github.com/spf13/cobra"
)

var waitlistCommand = cobra.Command{
	Use:   "waitlist",
	Short: "waitlist related commands",
	Long:  `Commands for inspecting the confirmed waitlist`,
}

var listWaitlistCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists all confirmed entries",
	Long:  `This will list all confirmed waitlist entries, newest first`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		service := resolveWaitlistService(dataStore, mailing.NewNoOpMailer())
		lst, err := service.ConfirmedEntries(context.Background())
		if err != nil {
			fmt.Printf("Unable to load waitlist entries: %s", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\t%s\r\n",
			"ID",
			"Email",
			"Name",
			"Company",
			"CreatedAt",
		)
		for _, v := range lst {
			company := ""
			if v.Company != nil {
				company = *v.Company
			}
			fmt.Fprintf(
				w,
				"%s\t%s\t%s\t%s\t%s\r\n",
				v.ID,
				v.Email,
				v.Name,
				company,
				v.CreatedAt,
			)
		}

		fmt.Fprintf(w, "------------------------------------------------- \r\n")
		fmt.Fprintf(w, "%d entries loaded", len(lst))
		w.Flush()
	},
}
