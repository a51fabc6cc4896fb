package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recent access events",
	RunE: func(_ *cobra.Command, _ []string) error {
		token, err := loadToken()
		if err != nil {
			return err
		}

		var events []struct {
			ID         int       `json:"id"`
			UserID     *int      `json:"user_id"`
			Status     string    `json:"status"`
			Message    *string   `json:"message"`
			DeviceID   *string   `json:"device_id"`
			Confidence *float64  `json:"confidence"`
			CreatedAt  time.Time `json:"created_at"`
		}

		if _, err := getJSON("/api/v1/events", token, nil, &events); err != nil {
			return err
		}

		if len(events) == 0 {
			fmt.Println("No events recorded.")
			return nil
		}

		for _, e := range events {
			line := fmt.Sprintf("%s  #%d  %-8s", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.ID, e.Status)
			if e.UserID != nil {
				line += fmt.Sprintf("  user=%d", *e.UserID)
			}
			if e.DeviceID != nil {
				line += fmt.Sprintf("  device=%s", *e.DeviceID)
			}
			if e.Confidence != nil {
				line += fmt.Sprintf("  confidence=%.2f", *e.Confidence)
			}
			if e.Message != nil {
				line += "  " + *e.Message
			}

			switch e.Status {
			case "granted":
				color.Green(line)
			case "denied":
				color.Red(line)
			default:
				fmt.Println(line)
			}
		}
		return nil
	},
}
