package probe_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/actuatorkit/probe"
	"github.com/jonwraymond/actuatorkit/state"
)

func ExampleRegistry_RunAll() {
	reg := probe.NewRegistry()

	reg.RegisterFunc("database", func(ctx context.Context) bool {
		return true // e.g. db.PingContext(ctx) == nil
	})
	reg.RegisterFunc("downstream", func(ctx context.Context) bool {
		return false
	})

	for _, r := range reg.RunAll(context.Background()) {
		fmt.Printf("%s: %v\n", r.Name, r.Healthy)
	}
	// Output:
	// database: true
	// downstream: false
}

func ExampleRegistry_AllHealthy() {
	reg := probe.NewRegistry()
	reg.RegisterFunc("a", func(ctx context.Context) bool { return true })
	reg.RegisterFunc("b", func(ctx context.Context) bool { return true })

	fmt.Println("All healthy:", reg.AllHealthy(context.Background()))

	reg.RegisterFunc("c", func(ctx context.Context) bool { return false })
	fmt.Println("All healthy:", reg.AllHealthy(context.Background()))
	// Output:
	// All healthy: true
	// All healthy: false
}

// Probes may read the shared state store; they must tolerate stale reads.
func ExampleRegistry_RunAll_sharedState() {
	store := state.NewMemoryStore()
	_ = store.Set("migrations", "done")

	reg := probe.NewRegistry()
	reg.RegisterFunc("migrations", func(ctx context.Context) bool {
		v, _ := store.Get("migrations")
		return v == "done"
	})

	results := reg.RunAll(context.Background())
	fmt.Println(results[0].Name, results[0].Healthy)
	// Output:
	// migrations true
}

func ExampleNewMonitor() {
	reg := probe.NewRegistry()
	reg.RegisterFunc("always", func(ctx context.Context) bool { return true })

	mon := probe.NewMonitor(reg, probe.MonitorConfig{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mon.Start(ctx)
	defer mon.Stop()

	// Wait for the first batch to land.
	for mon.LastResults() == nil {
		time.Sleep(time.Millisecond)
	}

	fmt.Println("Healthy:", mon.Healthy())
	// Output:
	// Healthy: true
}
