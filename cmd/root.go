package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/docdesk/docdesk/internal/app"
	"github.com/docdesk/docdesk/internal/config"
	"github.com/docdesk/docdesk/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	serverFlag            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "docdesk",
	Short: "TUI desktop for chatting with your documents",
	Long: `Docdesk is a terminal desktop for a document-chat backend. It arranges
document, session, search, and chat panels as draggable windows in two
columns, and streams assistant responses as they arrive.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().StringVar(&serverFlag, "server", "", "Backend server URL (overrides config)")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("docdesk %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("docdesk %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if serverFlag != "" {
		cfg.SetServerURL(serverFlag)
	}

	defer logger.Close()

	m := app.New(cfg)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
