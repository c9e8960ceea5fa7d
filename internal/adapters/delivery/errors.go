package delivery

import "errors"

// Sentinel kinds for delivery errors.
var (
	ErrDeliveryFailed = errors.New("delivery failed")
	ErrNoCredentials  = errors.New("organizer smtp credentials not configured")
)
