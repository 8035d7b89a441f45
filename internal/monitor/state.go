package monitor

import (
	"errors"

	"github.com/nerrad567/roomsense/internal/sensor/hdc1000"
)

// State is the loop's position in the cycle.
type State string

const (
	StateIdle       State = "idle"
	StateSampling   State = "sampling"
	StatePublishing State = "publishing"
	StateSleeping   State = "sleeping"
	StateFailed     State = "failed"
)

// Kind classifies a failed cycle by the step that failed.
type Kind string

const (
	KindOpenDevice        Kind = "open_device"
	KindDeviceSelect      Kind = "device_select"
	KindSetup             Kind = "setup"
	KindRequestConversion Kind = "request_conversion"
	KindReadResult        Kind = "read_result"
	KindSendFailure       Kind = "send_failure"

	// KindUnclassified is a sampler error carrying none of the driver sentinels.
	KindUnclassified Kind = "unclassified"
)

// sampleKinds maps driver sentinels to kinds, in protocol order.
var sampleKinds = []struct {
	err  error
	kind Kind
}{
	{hdc1000.ErrOpenDevice, KindOpenDevice},
	{hdc1000.ErrDeviceSelect, KindDeviceSelect},
	{hdc1000.ErrSetup, KindSetup},
	{hdc1000.ErrRequestConversion, KindRequestConversion},
	{hdc1000.ErrReadResult, KindReadResult},
}

// classifySample returns the Kind for an error from Sampler.Sample.
func classifySample(err error) Kind {
	for _, sk := range sampleKinds {
		if errors.Is(err, sk.err) {
			return sk.kind
		}
	}
	return KindUnclassified
}
