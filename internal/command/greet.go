package command

import (
	"context"
	"encoding/json"
	"fmt"
)

// Greet returns the greeting for name. It never fails.
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}

type greetArgs struct {
	Name string `json:"name"`
}

func greet(_ context.Context, args json.RawMessage) (any, error) {
	var a greetArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return Greet(a.Name), nil
}
