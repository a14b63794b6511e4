package checkout

import "log"

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// LogNotifier writes notifications to the server log. Stands in for the
// storefront's toast surface.
type LogNotifier struct{}

func (n *LogNotifier) Notify(kind, title, message string) {
	log.Printf("[notify] %s: %s: %s", kind, title, message)
}
