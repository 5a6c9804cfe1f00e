package sms

import "context"

// Gateway delivers a one-time passcode to a phone number. Delivery
// failure is terminal for the request; the caller does not retry.
type Gateway interface {
	SendOTP(ctx context.Context, phoneNumber, code string) error
	IsConfigured() bool
}
