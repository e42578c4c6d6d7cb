package monitor

// Decision is the alerting action a check outcome calls for. The pure
// transition is separated from the side-effecting dispatch so the state
// machine is testable without a mail server.
type Decision int

const (
	DecideNone Decision = iota
	DecideDown
	DecideRecovery
)

func (d Decision) String() string {
	switch d {
	case DecideDown:
		return "down"
	case DecideRecovery:
		return "recovery"
	default:
		return "none"
	}
}

// NextFailures computes the consecutive-failure streak after a check:
// any pass resets it to zero, any failure extends it.
func NextFailures(passed bool, current int) int {
	if passed {
		return 0
	}
	return current + 1
}

// Transition applies one check outcome to a target's alert state.
//
// A target is in one of two states, keyed by alertActive: Nominal
// (false) or Alerting (true). Nominal targets move to Alerting and fire
// a down-alert when the streak reaches the threshold; below it they stay
// silent. Alerting targets fire exactly one recovery alert on the first
// pass and are otherwise quiet, so repeated failures never re-fire the
// down-alert.
//
// The threshold is whatever the settings say at this tick; a streak that
// started under a different threshold is judged against the current one.
func Transition(alertActive, passed bool, nextFailures, threshold int) (bool, Decision) {
	if alertActive {
		if passed {
			return false, DecideRecovery
		}
		return true, DecideNone
	}
	if !passed && nextFailures >= threshold {
		return true, DecideDown
	}
	return false, DecideNone
}
