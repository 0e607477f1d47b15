package upload

import (
	"fmt"
)

// State is the phase of one upload attempt.
type State int

const (
	Idle State = iota
	Validating
	Rejected
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Rejected:
		return "rejected"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition follows s in this attempt.
func (s State) Terminal() bool {
	return s == Rejected || s == Succeeded || s == Failed
}

// Tone selects the color the status message is shown in.
type Tone int

const (
	ToneError Tone = iota
	ToneSuccess
)

// Status is what the status area shows after an attempt ends.
type Status struct {
	Title   string
	Message string
	Tone    Tone
}

const (
	StatusSucceeded = "Upload succeeded"
	StatusFailed    = "Upload failed"

	MsgSucceeded    = "Your file was uploaded successfully."
	MsgBadType      = "Wrong file type. Only .jpg, .jpeg, .png and .gif are supported."
	MsgUploadFailed = "Upload failed"
	MsgNetworkRetry = "An error occurred during upload. Please try again."
	MsgUnreadable   = "The selected file could not be read."
	MsgCopied       = "URL copied to clipboard!"
)

// MsgTooLarge is the rejection message for the default 5 MiB limit.
var MsgTooLarge = TooLargeMessage(DefaultMaxBytes)

// TooLargeMessage is the rejection message for a size limit of max bytes.
func TooLargeMessage(max int64) string {
	const mib = 1024 * 1024
	if max%mib == 0 {
		return fmt.Sprintf("File size exceeds the %d MB limit", max/mib)
	}
	return fmt.Sprintf("File size exceeds the %d byte limit", max)
}
