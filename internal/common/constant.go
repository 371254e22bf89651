// Package common contains shared constants, sentinel errors and random helpers
// used across AUXillary components.
package common

// RequestIDMetadataKey is the gRPC metadata key (and HTTP header, case-insensitively)
// carrying a caller-chosen request identifier for log correlation.
const RequestIDMetadataKey = "x-request-id"
