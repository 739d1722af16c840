package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

func TestAssign(t *testing.T) {
	info := AccountInfo{ID: 42, StartingBalance: moneypkg.MustParse("10"), Type: Asset}

	testCases := []struct {
		name        string
		account     *Account
		role        Role
		wantMissing string
	}{
		{name: "OK", account: newTestAccount(t, 42, "10", Asset), role: RoleAccount},
		{name: "OKFundsSource", account: newTestAccount(t, 42, "10", Liability), role: RoleFundsSource},
		{name: "NilAccount", account: nil, role: RoleAccount, wantMissing: "account"},
		{name: "NoInfo", account: &Account{log: &entryLog{}}, role: RoleAccount, wantMissing: "account info"},
		{name: "NoEntryLog", account: &Account{info: &info}, role: RoleAccount, wantMissing: "entry log"},
		{name: "NoEntryLogFundsSource", account: &Account{info: &info}, role: RoleFundsSource, wantMissing: "entry log"},
		{
			name:        "UnknownType",
			account:     &Account{info: &AccountInfo{ID: 42}, log: &entryLog{}},
			role:        RoleAccount,
			wantMissing: "account type",
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			g, err := assign(tc.role, tc.account)

			if tc.wantMissing == "" {
				require.NoError(t, err)
				require.Equal(t, []Role{tc.role}, tc.account.Roles())

				g.revoke()
				require.Empty(t, tc.account.Roles())

				return
			}

			require.Nil(t, g)
			require.ErrorIs(t, err, ErrCapabilityRequirement)

			var reqErr *CapabilityRequirementError
			require.True(t, errors.As(err, &reqErr))
			require.Equal(t, tc.role, reqErr.Role)
			require.Equal(t, tc.wantMissing, reqErr.Missing)

			if tc.account != nil {
				require.Empty(t, tc.account.Roles())
				require.Empty(t, tc.account.Entries())
			}
		})
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	a := newTestAccount(t, 1, "0", Asset)

	outer, err := assign(RoleFundsSource, a)
	require.NoError(t, err)

	inner, err := assign(RoleFundsSource, a)
	require.NoError(t, err)

	inner.revoke()
	inner.revoke()
	require.Equal(t, []Role{RoleFundsSource}, a.Roles())

	outer.revoke()
	require.Empty(t, a.Roles())
}

func TestRevokedRoleCannotBeUsed(t *testing.T) {
	a := newTestAccount(t, 1, "100", Asset)

	role, err := grantAccount(a)
	require.NoError(t, err)
	role.revoke()

	_, err = role.record("deposit", moveIn, posting{amount: moneypkg.MustParse("1")})
	require.ErrorIs(t, err, ErrInvalidState)
	require.Empty(t, a.Entries())

	source, err := grantFundsSource(a)
	require.NoError(t, err)
	source.revoke()

	require.ErrorIs(t, source.ensureFunds(moneypkg.MustParse("1")), ErrInvalidState)
}

func TestDepositOnAccountWithoutEntryLog(t *testing.T) {
	info := AccountInfo{ID: 9, StartingBalance: moneypkg.MustParse("50"), Type: Asset}
	a := &Account{info: &info}

	_, err := NewDeposit(a, "Initial Deposit", testTime, moneypkg.MustParse("1")).Execute()
	require.ErrorIs(t, err, ErrCapabilityRequirement)

	require.Empty(t, a.Roles())
	require.Nil(t, a.log)
	require.Equal(t, "50.00", a.Balance().String())
}
