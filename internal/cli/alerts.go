package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opskit/devnotes/internal/observability"
)

var (
	alertsJSON   bool
	alertsNotify bool
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Evaluate and show corpus health alerts",
	Long: `Evaluate the corpus health alert conditions and show any that fire:
documents with lint errors, stale lints, fluff residue, too many open
findings, and too many unanswered questions.

With --notify, triggered alerts are also sent to the configured Slack
webhook.`,
	Args: cobra.NoArgs,
	RunE: runAlerts,
}

func init() {
	alertsCmd.Flags().BoolVar(&alertsJSON, "json", false, "Output alerts as JSON")
	alertsCmd.Flags().BoolVar(&alertsNotify, "notify", false, "Send triggered alerts to the configured webhook")
	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(cmd *cobra.Command, args []string) error {
	if AlertEngine == nil {
		return fmt.Errorf("alert engine not initialized (no workspace state)")
	}

	alerts, err := AlertEngine.Evaluate()
	if err != nil {
		return err
	}

	if alertsJSON {
		data, err := json.MarshalIndent(alerts, "", "  ")
		if err != nil {
			return fmt.Errorf("formatting alerts as JSON: %w", err)
		}
		fmt.Println(string(data))
	} else if len(alerts) == 0 {
		fmt.Println("No active alerts. Corpus looks healthy.")
	} else {
		fmt.Printf("%d active alert(s):\n\n", len(alerts))
		for _, a := range alerts {
			fmt.Printf("  [%s] %s\n", strings.ToUpper(string(a.Severity)), a.Message)
			fmt.Printf("        condition: %s, triggered: %s\n",
				a.Condition, a.TriggeredAt.Format(time.RFC3339))
		}
	}

	if alertsNotify && len(alerts) > 0 {
		if Notifier == nil {
			return fmt.Errorf("--notify set but no webhook configured (notify.webhook_url)")
		}
		if err := Notifier.Notify(alerts); err != nil {
			return fmt.Errorf("sending notification: %w", err)
		}
		if EventLog != nil {
			_ = EventLog.Write(alertEvent(len(alerts)))
		}
		fmt.Fprintf(cmd.OutOrStderr(), "notified %d alert(s)\n", len(alerts))
	}
	return nil
}

func alertEvent(count int) observability.Event {
	return observability.Event{
		Type:    "alerts.notified",
		Message: "alerts sent to notification channel",
		Data:    map[string]any{"count": count},
	}
}
