package service

import "context"

// PushSender defines the interface for delivering push notifications to devices.
type PushSender interface {
	// SendToTokens sends a notification to the given device tokens and reports
	// how many succeeded, how many failed, and which tokens are invalid and
	// should be pruned.
	SendToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) (sent, failed int, invalidTokens []string, err error)
}
