package verification

import "math/rand"

// NameResolver resolves a valid UPI ID to an account holder name. Resolution
// must always succeed once the ID's format is valid.
type NameResolver interface {
	Resolve(vpa string) string
}

// knownAccounts maps demo identifiers to display names.
var knownAccounts = map[string]string{
	"user@upi":         "Amit Sharma",
	"amit@oksbi":       "Amit Sharma",
	"priya@okhdfcbank": "Priya Patel",
	"rahul@okicici":    "Rahul Verma",
	"sneha@ybl":        "Sneha Gupta",
	"vikram@paytm":     "Vikram Singh",
}

func NewStaticResolver(accounts map[string]string, fallback string) *StaticResolver {
	return &StaticResolver{accounts: accounts, fallback: fallback}
}

// StaticResolver answers only from a fixed table. Deterministic, used in tests.
type StaticResolver struct {
	accounts map[string]string
	fallback string
}

func (r *StaticResolver) Resolve(vpa string) string {
	if name, ok := r.accounts[vpa]; ok {
		return name
	}
	return r.fallback
}

var (
	demoFirstNames = []string{"Amit", "Priya", "Rahul", "Sneha", "Vikram", "Anjali", "Rohan", "Kavya"}
	demoLastNames  = []string{"Sharma", "Patel", "Verma", "Gupta", "Singh", "Reddy", "Iyer", "Mehta"}
)

func NewDemoResolver() *DemoResolver {
	return &DemoResolver{}
}

// DemoResolver synthesizes a plausible holder name for identifiers missing
// from the known-accounts table. Demo-only stub; the non-determinism stays
// behind the NameResolver interface.
type DemoResolver struct{}

func (r *DemoResolver) Resolve(vpa string) string {
	if name, ok := knownAccounts[vpa]; ok {
		return name
	}
	return demoFirstNames[rand.Intn(len(demoFirstNames))] + " " + demoLastNames[rand.Intn(len(demoLastNames))]
}
