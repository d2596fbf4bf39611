package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/ncm-player/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra commands are defined globally.
	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Store a NetEase Cloud Music session",
		Long: `Stores the session cookies used for every request.

Paste the cookie export of the desktop client:
  ncm-player login --credential '[{"Name":"MUSIC_U","Value":"..."}]'
  ncm-player login < cookies.json

Or log in through a browser window:
  ncm-player login --browser

The browser login waits until the MUSIC_U cookie appears, then saves every cookie of music.163.com.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			browser, _ := cmd.Flags().GetBool("browser")
			credential, _ := cmd.Flags().GetString("credential")

			app.ExecuteLoginCommand(cmd.Context(), appConfig, cmd.OutOrStdout(), app.LoginOptions{
				Browser:    browser,
				Credential: credential,
				Input:      cmd.InOrStdin(),
			})
		},
	}

	//nolint:gochecknoglobals // Cobra commands are defined globally.
	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteLogoutCommand(cmd.Context(), appConfig, cmd.OutOrStdout())
		},
	}

	//nolint:gochecknoglobals // Cobra commands are defined globally.
	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Show the account of the stored session",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteWhoAmICommand(cmd.Context(), appConfig, cmd.OutOrStdout())
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	loginCmd.Flags().BoolP("browser", "b", false, "log in through a browser window.")
	loginCmd.Flags().String("credential", "", "cookie export as JSON; read from stdin when omitted.")
	loginCmd.MarkFlagsMutuallyExclusive("browser", "credential")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
