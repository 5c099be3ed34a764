package reports

import (
	"strings"
	"time"

	"github.com/crestline-data/revlens/pkg/db/models/sales"
)

// ClassificationMode selects how a settlement row's sales channel is
// resolved. The upstream settlement feed changed schemes mid-history, so
// the mode in force depends on the settlement date.
type ClassificationMode int

const (
	// ClassifyByFulfillment derives the channel from the fulfillment code
	// (marketplace fulfillment codes carry an "MP-" prefix).
	ClassifyByFulfillment ClassificationMode = iota
	// ClassifyByOrigin takes the channel directly from the order origin field.
	ClassifyByOrigin
)

// PolicyRule binds a classification mode to a half-open [From, Until)
// validity window. A nil From or Until leaves that side unbounded.
type PolicyRule struct {
	From  *time.Time
	Until *time.Time
	Mode  ClassificationMode
}

// Contains reports whether t falls inside the rule's validity window.
func (r PolicyRule) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.Until != nil && !t.Before(*r.Until) {
		return false
	}
	return true
}

// PolicyTable is an ordered set of date-ranged classification rules.
// Keeping the cutoff explicit here (rather than inline branching in the
// reconciliation pipeline) makes the schema discontinuity independently
// testable.
type PolicyTable []PolicyRule

// ModeFor returns the classification mode in force at t.
// Falls back to ClassifyByOrigin when no rule matches, which matches the
// feed's current scheme.
func (p PolicyTable) ModeFor(t time.Time) ClassificationMode {
	for _, rule := range p {
		if rule.Contains(t) {
			return rule.Mode
		}
	}
	return ClassifyByOrigin
}

// FulfillmentCutoff returns the date the settlement feed switched from
// fulfillment-code classification to origin-based classification, at
// midnight in the reporting zone.
func FulfillmentCutoff(zone *time.Location) time.Time {
	return time.Date(2023, time.July, 1, 0, 0, 0, 0, zone)
}

// DefaultSettlementPolicy reproduces the feed's schema history: rows before
// the cutoff classify by fulfillment code, rows at or after it by origin.
func DefaultSettlementPolicy(zone *time.Location) PolicyTable {
	cutoff := FulfillmentCutoff(zone)
	return PolicyTable{
		{Until: &cutoff, Mode: ClassifyByFulfillment},
		{From: &cutoff, Mode: ClassifyByOrigin},
	}
}

// marketplaceFulfillmentPrefix marks marketplace-fulfilled rows in the
// pre-cutoff fulfillment-code scheme.
const marketplaceFulfillmentPrefix = "MP-"

// ClassifySettlementChannel resolves the sales channel of a settlement row
// under the policy in force at its settlement date.
func ClassifySettlementChannel(s sales.Settlement, policy PolicyTable) string {
	switch policy.ModeFor(s.SettledAt) {
	case ClassifyByFulfillment:
		if strings.HasPrefix(s.FulfillmentCode, marketplaceFulfillmentPrefix) {
			return sales.ChannelMarketplace
		}
		return sales.ChannelWebshop
	default:
		return s.Origin
	}
}
