// Package action resolves a fitness course name into the short Chinese
// physical-action phrase used as the verb clause of a composed prompt.
package action

import "context"

// PlaceholderAction is substituted when the model answers with an empty or
// unparseable payload. It is a successful result, not an error mask.
const PlaceholderAction = "自信摆姿势"

// Resolver deduces the depicted physical action for a course name.
type Resolver interface {
	Resolve(ctx context.Context, courseName string) (string, error)
}
