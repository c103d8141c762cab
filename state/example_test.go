package state_test

import (
	"fmt"

	"github.com/jonwraymond/actuatorkit/state"
)

func ExampleNewMemoryStore() {
	store := state.NewMemoryStore()

	_ = store.Set("build.version", "1.4.2")

	value, ok := store.Get("build.version")
	fmt.Println("Found:", ok)
	fmt.Println("Value:", value)

	_, ok = store.Get("missing")
	fmt.Println("Missing key found:", ok)
	// Output:
	// Found: true
	// Value: 1.4.2
	// Missing key found: false
}

func ExampleMemoryStore_Snapshot() {
	store := state.NewMemoryStore()
	_ = store.Set("region", "eu-west-1")

	snap := store.Snapshot()

	// Later writes do not affect a snapshot already taken.
	_ = store.Set("region", "us-east-2")

	fmt.Println("Snapshot:", snap["region"])
	current, _ := store.Get("region")
	fmt.Println("Store:", current)
	// Output:
	// Snapshot: eu-west-1
	// Store: us-east-2
}

func ExampleValidateKey() {
	fmt.Println(state.ValidateKey("db:pool:active"))
	fmt.Println(state.ValidateKey(""))
	// Output:
	// <nil>
	// state: key is invalid
}
