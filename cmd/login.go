package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/planner-time-tracker/internal/planner"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Microsoft Planner",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, _, err := newPlannerClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	me, err := client.WhoAmI(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Signed in, but could not read profile: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Signed in as %s (%s)\n", me.DisplayName, me.UserPrincipalName)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := planner.Logout(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Println("Signed out.")
	return nil
}
