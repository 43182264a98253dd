package signature

import "fmt"

// ArgumentError reports arguments that do not fit a signature. It is raised
// before anything is transmitted.
type ArgumentError struct {
	Capability string
	Param      string
	Reason     string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: argument %s: %s", e.Capability, e.Param, e.Reason)
}
