package verification

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/zenkart/checkout/src/domain"
)

var (
	vpaPattern    = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9._-]+$`)
	mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
)

// bankSuffixes maps UPI handle suffixes to bank labels. Some suffixes are
// substrings of others (sbi/oksbi), so matching is longest-suffix-wins.
var bankSuffixes = map[string]string{
	"oksbi":      "State Bank of India",
	"sbi":        "State Bank of India",
	"okhdfcbank": "HDFC Bank",
	"hdfcbank":   "HDFC Bank",
	"okicici":    "ICICI Bank",
	"icici":      "ICICI Bank",
	"okaxis":     "Axis Bank",
	"axisbank":   "Axis Bank",
	"ybl":        "PhonePe",
	"ibl":        "PhonePe",
	"paytm":      "Paytm Payments Bank",
	"apl":        "Amazon Pay",
	"upi":        "UPI",
}

// invalidMobileSuffix marks demo numbers treated as unregistered.
const invalidMobileSuffix = "0000"

func NewService(resolver NameResolver, latency time.Duration) *Service {
	return &Service{resolver: resolver, latency: latency}
}

// Service validates payment identifiers and customer mobile numbers. Lookups
// are simulated with a fixed latency; set it to zero in tests.
type Service struct {
	resolver NameResolver
	latency  time.Duration
}

func (s *Service) VerifyUPI(ctx context.Context, vpa string) domain.VerificationResult {
	if vpa == "" {
		return domain.VerificationResult{Error: "Please enter a UPI ID"}
	}
	if err := s.sleep(ctx); err != nil {
		return domain.VerificationResult{Error: err.Error()}
	}
	if !vpaPattern.MatchString(vpa) {
		return domain.VerificationResult{Error: "Invalid UPI ID format"}
	}
	handle := vpa[strings.LastIndex(vpa, "@")+1:]
	return domain.VerificationResult{
		Success:  true,
		Name:     s.resolver.Resolve(vpa),
		BankName: bankLabel(handle),
	}
}

func (s *Service) VerifyMobile(ctx context.Context, number string) domain.VerificationResult {
	if number == "" {
		return domain.VerificationResult{Error: "Please enter a mobile number"}
	}
	if err := s.sleep(ctx); err != nil {
		return domain.VerificationResult{Error: err.Error()}
	}
	if !mobilePattern.MatchString(number) {
		return domain.VerificationResult{Error: "Invalid mobile number format"}
	}
	valid := !strings.HasSuffix(number, invalidMobileSuffix)
	return domain.VerificationResult{Success: true, IsValid: &valid}
}

func (s *Service) sleep(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// orderedSuffixes holds the table keys longest-first so ambiguous handles
// always resolve the same way.
var orderedSuffixes = func() []string {
	suffixes := make([]string, 0, len(bankSuffixes))
	for s := range bankSuffixes {
		suffixes = append(suffixes, s)
	}
	sort.Slice(suffixes, func(i, j int) bool {
		if len(suffixes[i]) != len(suffixes[j]) {
			return len(suffixes[i]) > len(suffixes[j])
		}
		return suffixes[i] < suffixes[j]
	})
	return suffixes
}()

func bankLabel(handle string) string {
	handle = strings.ToLower(handle)
	for _, s := range orderedSuffixes {
		if strings.HasSuffix(handle, s) {
			return bankSuffixes[s]
		}
	}
	return "Bank"
}
