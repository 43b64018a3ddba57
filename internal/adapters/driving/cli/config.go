package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage omnisync configuration",
	Long: `View and configure the API key, sync behaviour and render templates.

Use subcommands to change individual settings.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set the Omnivore API key",
	Long:  `Prompts for the API key without echoing it to the terminal.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigSetKey,
}

var configEndpointCmd = &cobra.Command{
	Use:   "endpoint <url>",
	Short: "Set the GraphQL endpoint",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigEndpoint,
}

var configFolderCmd = &cobra.Command{
	Use:   "folder <name>",
	Short: "Set the vault folder articles are written to",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigFolder,
}

var configFilterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Choose which articles get synced",
	Long: `Choose the filter applied when fetching articles.

Available filters:
  all        - every saved article
  highlights - only articles with highlights
  advanced   - articles matching a custom search query`,
	RunE: runConfigFilter,
}

var configOrderCmd = &cobra.Command{
	Use:   "order",
	Short: "Choose how highlights are ordered",
	Long: `Choose how highlights are ordered in rendered output.

Available orderings:
  update_time - the order the remote returned them
  location    - position within the source page`,
	RunE: runConfigOrder,
}

var configDateFormatCmd = &cobra.Command{
	Use:   "date-format <layout>",
	Short: "Set the date layout used in templates",
	Long: `Sets the Go reference layout used for dateSaved and dateHighlighted,
for example "2006-01-02 15:04:05".`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigDateFormat,
}

var configTemplateReset bool

var configTemplateCmd = &cobra.Command{
	Use:   "template <article|highlight> [file]",
	Short: "Set a render template from a file",
	Long: `Replaces the article or highlight template with the contents of the
given file. With --reset the built-in default is restored instead.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigTemplate,
}

func init() {
	configTemplateCmd.Flags().BoolVar(&configTemplateReset, "reset", false, "restore the built-in default template")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configEndpointCmd)
	configCmd.AddCommand(configFolderCmd)
	configCmd.AddCommand(configFilterCmd)
	configCmd.AddCommand(configOrderCmd)
	configCmd.AddCommand(configDateFormatCmd)
	configCmd.AddCommand(configTemplateCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println(headingStyle.Render("Current Configuration"))
	cmd.Println()

	// API settings
	cmd.Println("[API]")
	if settings.API.Key != "" {
		cmd.Printf("  Key: %s\n", maskAPIKey(settings.API.Key))
	} else {
		cmd.Printf("  Key: (not set)\n")
	}
	cmd.Printf("  Endpoint: %s\n", settings.API.Endpoint)
	status := "configured"
	if !settings.API.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	// Sync settings
	cmd.Println("[Sync]")
	cmd.Printf("  Folder: %s\n", settings.Sync.Folder)
	cmd.Printf("  Filter: %s\n", settings.Sync.Filter.Description())
	if settings.Sync.Filter == domain.FilterModeAdvanced {
		cmd.Printf("  Custom query: %s\n", settings.Sync.CustomQuery)
	}
	cmd.Printf("  Highlight order: %s\n", settings.Sync.HighlightOrder.Description())
	cmd.Println()

	// Templates
	defaults := settingsService.GetDefaults()
	cmd.Println("[Templates]")
	cmd.Printf("  Article: %s\n", templateSummary(settings.Template.Article, defaults.Template.Article))
	cmd.Printf("  Highlight: %s\n", templateSummary(settings.Template.Highlight, defaults.Template.Highlight))
	cmd.Println()

	// Render settings
	cmd.Println("[Render]")
	cmd.Printf("  Date format: %s\n", settings.Render.DateFormat)
	cmd.Println()

	// Validation
	if err := settingsService.Validate(); err != nil {
		cmd.Println(warnStyle.Render(fmt.Sprintf("Warning: %v", err)))
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigSetKey(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Enter API key: ")
	key := readPassword()
	cmd.Println()
	if key == "" {
		return errors.New("API key must not be empty")
	}

	if err := settingsService.SetAPIKey(key); err != nil {
		return fmt.Errorf("failed to set api key: %w", err)
	}

	cmd.Println("API key saved.")
	return nil
}

func runConfigEndpoint(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetEndpoint(args[0]); err != nil {
		return fmt.Errorf("failed to set endpoint: %w", err)
	}

	cmd.Printf("Endpoint set to: %s\n", args[0])
	return nil
}

func runConfigFolder(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetFolder(args[0]); err != nil {
		return fmt.Errorf("failed to set folder: %w", err)
	}

	cmd.Printf("Folder set to: %s\n", args[0])
	return nil
}

func runConfigFilter(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Filter")
	cmd.Println("-------------")
	modes := domain.AllFilterModes()
	for i, mode := range modes {
		cmd.Printf("  %d. %s\n", i+1, mode.Description())
	}
	cmd.Print("\nEnter choice: ")
	input := readLine(reader)
	idx := parseChoice(input, len(modes), 0)
	if idx == 0 {
		return errors.New("invalid selection")
	}
	mode := modes[idx-1]

	var custom string
	if mode == domain.FilterModeAdvanced {
		cmd.Print("Enter search query: ")
		custom = readLine(reader)
	}

	if err := settingsService.SetFilter(mode, custom); err != nil {
		return fmt.Errorf("failed to set filter: %w", err)
	}

	cmd.Printf("Filter set to: %s\n", mode.Description())
	return nil
}

func runConfigOrder(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Highlight Order")
	cmd.Println("----------------------")
	orders := domain.AllHighlightOrders()
	for i, order := range orders {
		cmd.Printf("  %d. %s\n", i+1, order.Description())
	}
	cmd.Print("\nEnter choice: ")
	input := readLine(reader)
	idx := parseChoice(input, len(orders), 0)
	if idx == 0 {
		return errors.New("invalid selection")
	}
	order := orders[idx-1]

	if err := settingsService.SetHighlightOrder(order); err != nil {
		return fmt.Errorf("failed to set highlight order: %w", err)
	}

	cmd.Printf("Highlight order set to: %s\n", order.Description())
	return nil
}

func runConfigDateFormat(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetDateFormat(args[0]); err != nil {
		return fmt.Errorf("failed to set date format: %w", err)
	}

	cmd.Printf("Date format set to: %s\n", args[0])
	return nil
}

func runConfigTemplate(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	target := args[0]
	if target != "article" && target != "highlight" {
		return fmt.Errorf("unknown template %q (expected article or highlight)", target)
	}

	var content string
	switch {
	case configTemplateReset:
		defaults := settingsService.GetDefaults()
		if target == "article" {
			content = defaults.Template.Article
		} else {
			content = defaults.Template.Highlight
		}
	case len(args) == 2:
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read template file: %w", err)
		}
		content = string(data)
	default:
		return errors.New("provide a template file or --reset")
	}

	var err error
	if target == "article" {
		err = settingsService.SetArticleTemplate(content)
	} else {
		err = settingsService.SetHighlightTemplate(content)
	}
	if err != nil {
		return fmt.Errorf("failed to set %s template: %w", target, err)
	}

	if configTemplateReset {
		cmd.Printf("Restored default %s template.\n", target)
	} else {
		cmd.Printf("Updated %s template.\n", target)
	}
	return nil
}

// Helper functions.

// templateSummary describes a template without dumping its contents.
func templateSummary(current, defaultTemplate string) string {
	if current == defaultTemplate {
		return "(default)"
	}
	lines := strings.Count(current, "\n") + 1
	if lines == 1 {
		return "(custom, 1 line)"
	}
	return fmt.Sprintf("(custom, %d lines)", lines)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
