package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dokani-app/dokani_backend/internal/utils/ledger"
)

func TestCapExceeded_DoubleSubmitSecondPaymentRejected(t *testing.T) {
	// Two submissions of 300 against a 500 sale: the first lands, and the
	// history the second one sees under the lock now carries it.
	base := decimal.NewFromInt(500)
	amount := decimal.NewFromInt(300)

	assert.False(t, ledger.CapExceeded(base, nil, amount))
	assert.True(t, ledger.CapExceeded(base, []ledger.Line{{Amount: amount}}, amount))
}

func TestCapExceeded_ExactRemainingAllowed(t *testing.T) {
	base := decimal.NewFromInt(500)
	lines := []ledger.Line{{Amount: decimal.NewFromInt(300)}}

	assert.False(t, ledger.CapExceeded(base, lines, decimal.NewFromInt(200)))
	assert.True(t, ledger.CapExceeded(base, lines, decimal.NewFromInt(201)))
}

func TestCapExceeded_RefundEntriesIgnored(t *testing.T) {
	base := decimal.NewFromInt(500)
	lines := []ledger.Line{{Amount: decimal.NewFromInt(500)}}

	assert.False(t, ledger.CapExceeded(base, lines, decimal.NewFromInt(-120)))
	assert.False(t, ledger.CapExceeded(base, lines, decimal.Zero))
}

func TestAnchorProtected(t *testing.T) {
	// A lone anchor is deletable; once a later entry exists it is not, even
	// when that entry appeared after the caller last looked.
	assert.False(t, ledger.AnchorProtected("p1", []string{"p1"}))
	assert.True(t, ledger.AnchorProtected("p1", []string{"p1", "p2"}))
	assert.False(t, ledger.AnchorProtected("p2", []string{"p1", "p2"}))
	assert.False(t, ledger.AnchorProtected("p1", nil))
}
