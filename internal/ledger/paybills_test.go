package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func testCreditors(t *testing.T) []*Account {
	t.Helper()

	return []*Account{
		newTestAccount(t, 3452, "30.52", Liability),
		newTestAccount(t, 309201, "498.22", Liability),
	}
}

func TestPayBillsAllPaid(t *testing.T) {
	source := newTestAccount(t, 20403, "4000.30", Asset)
	creditors := testCreditors(t)

	result, err := NewPayBills(source, creditors, testTime).Execute()
	require.NoError(t, err)
	require.NoError(t, result.Err())

	require.Equal(t, "3471.56", source.Balance().String())
	require.True(t, creditors[0].Balance().IsZero())
	require.True(t, creditors[1].Balance().IsZero())

	require.Equal(t, int64(20403), result.SourceID)
	require.Equal(t, []int64{3452, 309201}, result.Paid)
	require.Empty(t, result.Failed)
	require.Len(t, result.Transfers, 2)
	require.Len(t, source.Entries(), 2)

	require.Empty(t, source.Roles())
	for _, c := range creditors {
		require.Empty(t, c.Roles())
	}
}

func TestPayBillsPartialFailure(t *testing.T) {
	source := newTestAccount(t, 20403, "100.00", Asset)
	creditors := testCreditors(t)

	result, err := NewPayBills(source, creditors, testTime).Execute()
	require.NoError(t, err)

	require.Equal(t, []int64{3452}, result.Paid)
	require.Len(t, result.Failed, 1)
	require.Equal(t, int64(309201), result.Failed[0].CreditorID)
	require.Equal(t, "498.22", result.Failed[0].Amount.String())
	require.ErrorIs(t, result.Failed[0].Err, ErrInsufficientFunds)

	require.Equal(t, "69.48", source.Balance().String())
	require.True(t, creditors[0].Balance().IsZero())
	require.Equal(t, "498.22", creditors[1].Balance().String())
	require.Empty(t, creditors[1].Entries())

	err = result.Err()
	require.ErrorIs(t, err, ErrInsufficientFunds)

	var fundsErr *InsufficientFundsError
	require.True(t, errors.As(err, &fundsErr))
	require.Contains(t, err.Error(), "creditor 309201")
}

func TestPayBillsContinuesAfterFailure(t *testing.T) {
	source := newTestAccount(t, 1, "50.00", Asset)
	creditors := []*Account{
		newTestAccount(t, 2, "498.22", Liability),
		newTestAccount(t, 3, "30.52", Liability),
	}

	result, err := NewPayBills(source, creditors, testTime).Execute()
	require.NoError(t, err)

	require.Equal(t, []int64{3}, result.Paid)
	require.Len(t, result.Failed, 1)
	require.Equal(t, int64(2), result.Failed[0].CreditorID)
	require.Equal(t, "19.48", source.Balance().String())
}

func TestPayBillsBrokenCreditor(t *testing.T) {
	source := newTestAccount(t, 1, "50.00", Asset)
	info := AccountInfo{ID: 2, Type: Liability}
	creditors := []*Account{{info: &info}, newTestAccount(t, 3, "10.00", Liability)}

	result, err := NewPayBills(source, creditors, testTime).Execute()
	require.NoError(t, err)

	require.Equal(t, []int64{3}, result.Paid)
	require.Len(t, result.Failed, 1)
	require.ErrorIs(t, result.Failed[0].Err, ErrCapabilityRequirement)
	require.Equal(t, "40.00", source.Balance().String())
}

func TestPayBillsBrokenSource(t *testing.T) {
	creditors := testCreditors(t)

	ctx := NewPayBills(&Account{}, creditors, testTime)

	_, err := ctx.Execute()
	require.ErrorIs(t, err, ErrCapabilityRequirement)
	require.Equal(t, "30.52", creditors[0].Balance().String())

	_, err = ctx.Execute()
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestPayBillsNoCreditors(t *testing.T) {
	source := newTestAccount(t, 1, "50.00", Asset)

	result, err := NewPayBills(source, nil, testTime).Execute()
	require.NoError(t, err)
	require.Empty(t, result.Paid)
	require.Empty(t, result.Failed)
	require.NoError(t, result.Err())
}
