package cli

import (
	"context"
	"fmt"
)

// ShowMeetups lists community meetups straight from the API; there is no
// local controller or cache for these.
func (a *App) ShowMeetups(ctx context.Context) {
	meets, err := a.apiClient.GetMeetups(ctx)
	if err != nil {
		fmt.Println("Could not load meetups:", err)
		return
	}
	if len(meets) == 0 {
		fmt.Println("No meetups scheduled")
		return
	}
	for _, m := range meets {
		fmt.Printf("%s — %s (%s)\n", m.Date, m.Title, m.Location)
	}
}

// Ping probes backend liveness.
func (a *App) Ping(ctx context.Context) {
	if err := a.apiClient.HealthCheck(ctx); err != nil {
		fmt.Println("Backend unreachable:", err)
		return
	}
	fmt.Println("OK")
}
