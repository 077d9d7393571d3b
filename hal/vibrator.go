package hal

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// sysfsVibrator drives a timed_output style vibrator: writing a duration in
// milliseconds to the enable file starts the motor.
type sysfsVibrator struct {
	path string
}

// NewSysfsVibrator returns a Vibrator writing to path (for example
// /sys/class/timed_output/vibrator/enable).
func NewSysfsVibrator(path string) Vibrator { return sysfsVibrator{path: path} }

func (v sysfsVibrator) Vibrate(d time.Duration) error {
	ms := d.Milliseconds()
	if ms <= 0 {
		return nil
	}
	if err := os.WriteFile(v.path, []byte(strconv.FormatInt(ms, 10)), 0o644); err != nil {
		return fmt.Errorf("vibrate %s: %w", v.path, err)
	}
	return nil
}
