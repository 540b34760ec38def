package visit

import "fmt"

const NoActionNeededMessage = "No action needed"

func signedInMessage(name string) string {
	return name + " signed in"
}

func overstayedMessage(name string, by int) string {
	unit := "minutes"
	if by == 1 {
		unit = "minute"
	}
	return fmt.Sprintf("%s overstayed by %d %s.", name, by, unit)
}

func onTimeMessage(name string) string {
	return name + " left on time."
}

func errorMessage(name string, err error) string {
	return fmt.Sprintf("Unable to evaluate visit for %s: %v", name, err)
}

// InvalidPayloadMessage is returned for deliveries that could not be parsed.
func InvalidPayloadMessage(err error) string {
	return fmt.Sprintf("Unable to process event: %v", err)
}
