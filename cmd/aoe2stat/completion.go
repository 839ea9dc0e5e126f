package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for aoe2stat.

To load completions:

Bash:
  $ source <(aoe2stat completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ aoe2stat completion bash > /etc/bash_completion.d/aoe2stat
  # macOS:
  $ aoe2stat completion bash > $(brew --prefix)/etc/bash_completion.d/aoe2stat

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ aoe2stat completion zsh > "${fpath[1]}/_aoe2stat"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ aoe2stat completion fish | source

  # To load completions for each session, execute once:
  $ aoe2stat completion fish > ~/.config/fish/completions/aoe2stat.fish

PowerShell:
  PS> aoe2stat completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> aoe2stat completion powershell > aoe2stat.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Usage()
		}

		root := cmd.Root()
		out := cmd.OutOrStdout()

		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// completeFromNames returns a completion function offering the given
// candidate names, filtered by the typed prefix (case-insensitive).
func completeFromNames(names func() []string) func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix := strings.ToLower(toComplete)
		var candidates []string
		for _, name := range names() {
			if strings.HasPrefix(strings.ToLower(name), prefix) {
				candidates = append(candidates, name)
			}
		}
		return candidates, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerNameCompletion registers value completion for a flag.
func registerNameCompletion(cmd *cobra.Command, flagName string, names func() []string) {
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeFromNames(names))
}
